/*
 * @module service/csvcodec/parser_test
 * @description CSV解析器与序列化器单元测试
 * @architecture 测试层 - 纯函数测试，无外部依赖
 * @rules 覆盖引号转义、缺失单元格、空行、重复列名与往返一致性
 * @dependencies testing, testify, go-cmp
 * @refs parser.go, serializer.go
 */

package csvcodec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "空字符串", input: ""},
		{name: "纯空白", input: "   \n\t\r\n  "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := Parse(tc.input)
			require.NotNil(t, ds)
			assert.True(t, ds.IsEmpty())
			assert.Empty(t, ds.Columns)
		})
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	ds := Parse("id,label,confidence\n")
	assert.Equal(t, []string{"id", "label", "confidence"}, ds.Columns)
	assert.Equal(t, 0, ds.Len())
}

func TestSplitCells(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected []string
	}{
		{name: "普通单元格", line: "a,b,c", expected: []string{"a", "b", "c"}},
		{name: "引号内逗号", line: `a,"b,c",d`, expected: []string{"a", "b,c", "d"}},
		{name: "转义双引号", line: `a,"b""c",d`, expected: []string{"a", `b"c`, "d"}},
		{name: "空单元格", line: "a,,c", expected: []string{"a", "", "c"}},
		{name: "末尾逗号", line: "a,b,", expected: []string{"a", "b", ""}},
		{name: "未闭合引号吞掉后续逗号", line: `a,"b,c`, expected: []string{"a", "b,c"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitCells(tc.line))
		})
	}
}

func TestParse_Quoting(t *testing.T) {
	ds := Parse("x,y,z\na,\"b,c\",d\na,\"b\"\"c\",d\n")
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, []string{"a", "b,c", "d"}, ds.Records[0].Cells())
	assert.Equal(t, `b"c`, ds.Records[1].Value("y"))
}

func TestParse_MissingAndExtraCells(t *testing.T) {
	ds := Parse("a,b,c\n1,2\n1,2,3,4\n")
	require.Equal(t, 2, ds.Len())

	v, ok := ds.Records[0].Get("c")
	assert.True(t, ok, "缺失的单元格仍然是存在的列")
	assert.Equal(t, "", v)

	assert.Equal(t, []string{"1", "2", "3"}, ds.Records[1].Cells())
	assert.Equal(t, 3, ds.Records[1].Len())
}

func TestParse_LineEndingsAndBlankLines(t *testing.T) {
	ds := Parse("a,b\r\n\r\n1,2\r\n   \r\n3,4\r\n\n")
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "2", ds.Records[0].Value("b"))
	assert.Equal(t, "3", ds.Records[1].Value("a"))
}

func TestParse_HeaderCleanup(t *testing.T) {
	ds := Parse(" \"id\" , \"label, raw\" ,,score\n1,x,y,0.5\n")
	assert.Equal(t, []string{"id", "label, raw", "col2", "score"}, ds.Columns)
	assert.Equal(t, "y", ds.Records[0].Value("col2"))
}

func TestParse_CellCleanup(t *testing.T) {
	ds := Parse("a,b,c\n  padded  ,\"  quoted  \",\"\"\"wrapped\"\"\"\n")
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "padded", ds.Records[0].Value("a"))
	assert.Equal(t, "quoted", ds.Records[0].Value("b"))
	// 扫描后残留的一对外层引号被去掉
	assert.Equal(t, "wrapped", ds.Records[0].Value("c"))
}

func TestParse_DuplicateHeaders(t *testing.T) {
	ds := Parse("id,score,id\n1,0.5,2\n")
	require.Equal(t, 1, ds.Len())

	assert.Equal(t, []string{"id", "score"}, ds.Columns)
	assert.Equal(t, []string{"id", "score"}, ds.Records[0].Columns())
	assert.Equal(t, "2", ds.Records[0].Value("id"), "后出现的同名列覆盖前者")
}

func TestRecord_GetDistinguishesAbsent(t *testing.T) {
	ds := Parse("a,b\n,1\n")
	rec := ds.Records[0]

	v, ok := rec.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestRecord_MarshalJSONKeepsOrder(t *testing.T) {
	ds := Parse("zeta,alpha\n1,\"x\"\"y\"\n")
	data, err := json.Marshal(ds.Records[0])
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":"x\"y"}`, string(data))
}

func TestRecord_CopiesAreIndependent(t *testing.T) {
	ds := Parse("a,b\n1,2\n")
	rec := ds.Records[0]

	cols := rec.Columns()
	cols[0] = "changed"
	m := rec.Map()
	m["a"] = "changed"

	assert.Equal(t, []string{"a", "b"}, rec.Columns())
	assert.Equal(t, "1", rec.Value("a"))
}

func TestSerialize(t *testing.T) {
	ds := Parse("id,label,note\n1,\"b,c\",\"say \"\"hi\"\" now\"\n2,plain,\n")
	out := Serialize(ds.Records)

	expected := "id,label,note\n" +
		"1,\"b,c\",\"say \"\"hi\"\" now\"\n" +
		"2,plain,"
	assert.Equal(t, expected, out)
}

func TestSerialize_Empty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil))
}

func TestWriteTable_HeaderOnlyWhenNoRecords(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteTable(&b, []string{"id", "a,b"}, nil))
	assert.Equal(t, `id,"a,b"`, b.String())
}

func TestEscapeCell(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "无需转义", input: "abc", expected: "abc"},
		{name: "包含逗号", input: "a,b", expected: `"a,b"`},
		{name: "包含双引号", input: `a"b`, expected: `"a""b"`},
		{name: "空值", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EscapeCell(tc.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	columns := []string{"id", "label, raw", "confidence", "note"}
	original := &Dataset{
		Columns: columns,
		Records: []Record{
			NewRecord(columns, []string{"1", "b,c", "85%", `a "quoted" word`}),
			NewRecord(columns, []string{"2", "plain", "0.4", ""}),
			NewRecord(columns, []string{"3", `x"y`, "", "comma, and \"quote\" inside"}),
			NewRecord(columns, []string{"4", "", "", "tail"}),
		},
	}

	parsed := Parse(Serialize(original.Records))

	assert.True(t, parsed.Equal(original))
	if diff := cmp.Diff(original.Columns, parsed.Columns); diff != "" {
		t.Errorf("列不一致 (-want +got):\n%s", diff)
	}
	want := make([]map[string]string, 0, original.Len())
	got := make([]map[string]string, 0, parsed.Len())
	for i := range original.Records {
		want = append(want, original.Records[i].Map())
	}
	for i := range parsed.Records {
		got = append(got, parsed.Records[i].Map())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("记录不一致 (-want +got):\n%s", diff)
	}
}

func TestParseReader(t *testing.T) {
	ds, err := ParseReader(strings.NewReader("a\n1\n2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	t.Run("去除UTF-8 BOM", func(t *testing.T) {
		ds, err := ParseReader(strings.NewReader("\xEF\xBB\xBFconf,name\n90%,a\n40,b\n,c\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"conf", "name"}, ds.Columns)
		assert.Equal(t, "90%", ds.Records[0].Value("conf"))
	})

	t.Run("BOM只在开头去除", func(t *testing.T) {
		ds, err := ParseReader(strings.NewReader("a,b\n1,\xEF\xBB\xBFx\n"))
		require.NoError(t, err)
		assert.Equal(t, "\ufeffx", ds.Records[0].Value("b"))
	})
}
