package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/tuumbleweed/xerr"
)

/*
Message is one outbound email: a single recipient, an HTML body and at most
one file attachment. One Message maps to exactly one transport call.
*/
type Message struct {
	To             string
	Subject        string
	HTML           string
	AttachmentPath string
}

/*
buildMIME assembles a multipart/mixed RFC 2822 message: the HTML body part
plus, when AttachmentPath is set, the file read fully into memory and
attached under its base name. Both the Gmail raw send and the SES raw send
consume this byte form directly.
*/
func buildMIME(from string, msg Message) (raw []byte, e *xerr.Error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	var headers bytes.Buffer
	fmt.Fprintf(&headers, "From: %s\r\n", from)
	fmt.Fprintf(&headers, "To: %s\r\n", msg.To)
	fmt.Fprintf(&headers, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&headers, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&headers, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", `text/html; charset="UTF-8"`)
	htmlHeader.Set("Content-Transfer-Encoding", "base64")
	htmlPart, partErr := writer.CreatePart(htmlHeader)
	if partErr != nil {
		e = xerr.NewError(partErr, "create HTML body part", nil)
		return nil, e
	}
	htmlPart.Write(wrapBase64([]byte(msg.HTML)))

	if msg.AttachmentPath != "" {
		attachmentBytes, readErr := os.ReadFile(msg.AttachmentPath)
		if readErr != nil {
			e = xerr.NewError(readErr, "read attachment", msg.AttachmentPath)
			return nil, e
		}

		fileName := filepath.Base(msg.AttachmentPath)
		attachmentHeader := textproto.MIMEHeader{}
		attachmentHeader.Set("Content-Type", "application/octet-stream")
		attachmentHeader.Set("Content-Transfer-Encoding", "base64")
		attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		attachmentPart, partErr := writer.CreatePart(attachmentHeader)
		if partErr != nil {
			e = xerr.NewError(partErr, "create attachment part", fileName)
			return nil, e
		}
		attachmentPart.Write(wrapBase64(attachmentBytes))
	}

	closeErr := writer.Close()
	if closeErr != nil {
		e = xerr.NewError(closeErr, "finalize MIME message", nil)
		return nil, e
	}

	headers.Write(body.Bytes())
	return headers.Bytes(), e
}

// wrapBase64 encodes to base64 with RFC 2045 76-character lines.
func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)

	var wrapped bytes.Buffer
	for len(encoded) > 76 {
		wrapped.WriteString(encoded[:76])
		wrapped.WriteString("\r\n")
		encoded = encoded[76:]
	}
	wrapped.WriteString(encoded)
	wrapped.WriteString("\r\n")
	return wrapped.Bytes()
}
