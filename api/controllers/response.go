/*
 * @module api/controllers/response
 * @description 统一API响应结构与错误响应辅助函数
 * @rules status 0 表示成功，-1 表示失败；HTTP状态码通过 render.Status 设置
 * @dependencies github.com/go-chi/render
 */

package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// ErrorResponse 错误响应，err 不为空时拼接到消息后
func ErrorResponse(msg string, err error) APIResponse {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return APIResponse{Status: -1, Msg: msg}
}

// BadRequestResponse 参数错误
func BadRequestResponse(msg string, err error) APIResponse {
	return ErrorResponse(msg, err)
}

// NotFoundResponse 资源不存在
func NotFoundResponse(msg string, err error) APIResponse {
	return ErrorResponse(msg, err)
}

// InternalErrorResponse 内部错误
func InternalErrorResponse(msg string, err error) APIResponse {
	return ErrorResponse(msg, err)
}

// renderError 设置HTTP状态码并输出错误响应
func renderError(w http.ResponseWriter, r *http.Request, code int, resp APIResponse) {
	render.Status(r, code)
	render.JSON(w, r, resp)
}
