package diagnose_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/tmplview/diagnose"
)

func TestPrinter_plain_error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := diagnose.Printer{Radius: 2}.Fprint(
		&buf, errors.New("boom"),
	)
	require.NoError(t, err)
	assert.Equal(t, "boom\n", buf.String())
}

func TestPrinter_nil_error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, diagnose.Printer{}.Fprint(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestPrinter_context_window(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "page.tpl", "a\nb\nc\nd\ne\n",
	)

	der := diagnose.New(
		diagnose.WithMessage("bad"),
		diagnose.WithPath(pa),
		diagnose.WithLine(3),
	)

	var buf bytes.Buffer

	err := diagnose.Printer{Radius: 1}.Fprint(
		&buf, fmt.Errorf("rendering: %w", der),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		"rendering: bad in '"+pa+"' on line 3\n"+
			"   2: b\n"+
			"=> 3: c\n"+
			"   4: d\n",
		buf.String(),
	)
}

func TestPrinter_color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := diagnose.Printer{Color: true}.Fprint(
		&buf, errors.New("boom"),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}
