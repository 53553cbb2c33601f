package csvwriter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John", "John"},
		{"", ""},
		{"Jo,hn", `"Jo,hn"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{"carriage\rreturn", "\"carriage\rreturn\""},
		{"你好", "你好"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Escape(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, Unescape(got))
		})
	}
}

func TestWriterFlushesEachLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader([]string{"Birth date", "First, name"}))
	assert.Equal(t, "Birth date,First, name\n", buf.String())

	require.NoError(t, w.WriteRecord([]string{"01/01/1990", Escape("Jo,hn")}))
	assert.Equal(t, "Birth date,First, name\n01/01/1990,\"Jo,hn\"\n", buf.String())

	require.NoError(t, w.WriteRecord(nil))
	assert.Equal(t, "Birth date,First, name\n01/01/1990,\"Jo,hn\"\n\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterReportsWriteFailure(t *testing.T) {
	w := NewWriter(failingWriter{})
	err := w.WriteHeader([]string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
