package printer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sangkips/optica-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentPairFitsWidth(t *testing.T) {
	doc := printer.NewDocument(32)
	doc.Pair("Subtotal", "R$ 250,00")

	out := doc.Bytes()
	// skip the ESC @ init sequence
	line := string(bytes.TrimSuffix(out[2:], []byte{printer.LF}))
	assert.Len(t, line, 32)
	assert.True(t, bytes.HasPrefix([]byte(line), []byte("Subtotal")))
	assert.True(t, bytes.HasSuffix([]byte(line), []byte("R$ 250,00")))
}

func TestDocumentPairTruncatesLongLabel(t *testing.T) {
	doc := printer.NewDocument(20)
	doc.Pair("Armacao com nome muito longo", "R$ 10,00")

	line := string(bytes.TrimSuffix(doc.Bytes()[2:], []byte{printer.LF}))
	assert.Len(t, line, 20)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Visao Otica - Sao Joao", printer.Fold("Visão Ótica - São João"))
	assert.Equal(t, "Nao informado", printer.Fold("Não informado"))
	assert.Equal(t, "plain", printer.Fold("plain"))
}

func TestNewFromConfig(t *testing.T) {
	p, err := printer.NewFromConfig("buffer", "", "")
	require.NoError(t, err)

	require.NoError(t, p.Print(context.Background(), []byte("job")))
	buf, ok := p.(*printer.BufferPrinter)
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("job")}, buf.Jobs())

	_, err = printer.NewFromConfig("usb", "", "")
	assert.Error(t, err)
	_, err = printer.NewFromConfig("laser", "", "")
	assert.Error(t, err)

	none, err := printer.NewFromConfig("", "", "")
	require.NoError(t, err)
	assert.False(t, none.IsConnected())
}

func TestPaperWidth(t *testing.T) {
	assert.Equal(t, 32, printer.PaperWidth(58))
	assert.Equal(t, 48, printer.PaperWidth(80))
}
