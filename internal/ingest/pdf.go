package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/adiwiguna/chatpdf/internal/domain"
)

// Page is the text of one page of an uploaded document.
type Page struct {
	File    string
	Number  int
	Content string
}

// ExtractPages extracts per-page text from each uploaded PDF, preserving
// file order so citations line up with what the user uploaded.
func ExtractPages(files []domain.UploadedFile) ([]Page, error) {
	var pages []Page

	for _, file := range files {
		reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}

		for num := 1; num <= reader.NumPage(); num++ {
			page := reader.Page(num)
			if page.V.IsNull() {
				continue
			}

			text, err := page.GetPlainText(nil)
			if err != nil {
				// A single unreadable page should not sink the whole batch.
				log.Warn().Err(err).Str("file", file.Name).Int("page", num).Msg("failed to extract page text")
				continue
			}
			if strings.TrimSpace(text) == "" {
				continue
			}

			pages = append(pages, Page{
				File:    file.Name,
				Number:  num,
				Content: text,
			})
		}
	}

	return pages, nil
}
