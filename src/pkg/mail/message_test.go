package mail

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEBodyOnly(t *testing.T) {
	raw, e := buildMIME("comercial@empresa.com", Message{
		To:      "gerente@empresa.com",
		Subject: "Relatório",
		HTML:    "<html><body><p>Olá</p></body></html>",
	})
	require.Nil(t, e)

	text := string(raw)
	assert.Contains(t, text, "From: comercial@empresa.com\r\n")
	assert.Contains(t, text, "To: gerente@empresa.com\r\n")
	assert.Contains(t, text, "Subject: ")
	assert.Contains(t, text, "MIME-Version: 1.0\r\n")
	assert.Contains(t, text, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, text, `Content-Type: text/html; charset="UTF-8"`)
	assert.NotContains(t, text, "Content-Disposition: attachment")

	// The HTML body travels base64-encoded.
	encoded := base64.StdEncoding.EncodeToString([]byte("<html><body><p>Olá</p></body></html>"))
	assert.Contains(t, strings.ReplaceAll(text, "\r\n", ""), encoded)
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	dir := t.TempDir()
	attachmentPath := filepath.Join(dir, "Relatorio_Rupturas_Leste.xlsx")
	require.NoError(t, os.WriteFile(attachmentPath, []byte("workbook-bytes"), 0644))

	raw, e := buildMIME("comercial@empresa.com", Message{
		To:             "gerente@empresa.com",
		Subject:        "Relatório",
		HTML:           "<p>corpo</p>",
		AttachmentPath: attachmentPath,
	})
	require.Nil(t, e)

	text := string(raw)
	assert.Contains(t, text, `Content-Disposition: attachment; filename="Relatorio_Rupturas_Leste.xlsx"`)

	encoded := base64.StdEncoding.EncodeToString([]byte("workbook-bytes"))
	assert.Contains(t, strings.ReplaceAll(text, "\r\n", ""), encoded)
}

func TestBuildMIMEMissingAttachment(t *testing.T) {
	_, e := buildMIME("comercial@empresa.com", Message{
		To:             "gerente@empresa.com",
		Subject:        "Relatório",
		HTML:           "<p>corpo</p>",
		AttachmentPath: "/nonexistent/relatorio.xlsx",
	})
	assert.NotNil(t, e)
}

func TestWrapBase64LineLength(t *testing.T) {
	long := make([]byte, 4096)
	for index := range long {
		long[index] = byte(index % 251)
	}

	wrapped := string(wrapBase64(long))
	for _, line := range strings.Split(strings.TrimSpace(wrapped), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}

	joined := strings.ReplaceAll(strings.TrimSpace(wrapped), "\r\n", "")
	decoded, decodeErr := base64.StdEncoding.DecodeString(joined)
	require.NoError(t, decodeErr)
	assert.Equal(t, long, decoded)
}
