// Package docx writes WordprocessingML (.docx) documents from laid out lines
// and reads them back.
//
// A Document collects paragraphs. Each Paragraph implements span.Paragraph,
// so a layout.Line can emit its runs straight into it:
//
//	doc := docx.New()
//	if err := line.Emit(doc.AddParagraph()); err != nil {
//		return err
//	}
//	err := doc.Write(f)
//
// Pictures are stored under word/media and referenced by inline drawings.
// An optional ImageDescriber supplies their alt text.
package docx
