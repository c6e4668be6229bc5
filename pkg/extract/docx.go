package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxText reads word/document.xml out of the DOCX zip container and joins
// paragraph text in document order, one line per paragraph.
func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("open docx body: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("open docx: missing word/document.xml")
	}
	defer docXML.Close()

	return wordMLText(docXML)
}

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// wordMLText walks WordprocessingML tokens, collecting w:t character data and
// terminating each w:p with a newline. Only the w: namespace is body text;
// t/p elements from other namespaces (math, drawing) are ignored.
func wordMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx body: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Space == wordMLNamespace && el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if el.Name.Space != wordMLNamespace {
				break
			}
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
