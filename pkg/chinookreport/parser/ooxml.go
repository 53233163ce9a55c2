package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

// resolveRelativePath resolves a relationship target against the part's directory.
// Absolute targets are package-rooted.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// relsPathFor returns the relationships part of a package part.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// attr returns the value of the named attribute, ignoring namespaces.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// sheetRef is a workbook sheet entry.
type sheetRef struct {
	name string
	rID  string
}

// parseWorkbookSheets returns the sheets of workbook.xml in workbook order.
func parseWorkbookSheets(data []byte) []sheetRef {
	var result []sheetRef
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se, "name"), attr(se, "id")
			if name != "" && rID != "" {
				result = append(result, sheetRef{name: name, rID: rID})
			}
		}
	}

	return result
}

// parseRelationships maps relationship ids to targets, keeping those whose type contains kind.
func parseRelationships(data []byte, kind string) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			relType := strings.ToLower(attr(se, "Type"))
			if strings.HasSuffix(relType, "/"+kind) {
				result[attr(se, "Id")] = attr(se, "Target")
			}
		}
	}

	return result
}

// sheetParts maps sheet names to their worksheet part paths.
func sheetParts(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result, err
	}
	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result, err
	}

	targets := parseRelationships(wbRelsXML, "worksheet")
	for _, s := range parseWorkbookSheets(workbookXML) {
		if target, ok := targets[s.rID]; ok {
			result[s.name] = resolveRelativePath(target, "xl")
		}
	}
	return result, nil
}
