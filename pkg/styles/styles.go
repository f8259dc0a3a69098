package styles

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-riskform/pkg/dom"
)

//go:embed assets/*.css
var embeddedAssets embed.FS

// StylesheetName is the file name of the validation stylesheet inside AssetsFS.
const StylesheetName = "riskform.css"

// AssetsFS exposes the embedded stylesheet so servers can mount it.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the CSS rules for the invalid marker and the error
// container. Page styling must not reuse these class names.
func Stylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}

// Inject appends a <style> element carrying Stylesheet to the document head.
// Documents without a head are left untouched.
func Inject(doc dom.Document) dom.Element {
	if doc == nil {
		return nil
	}
	head := doc.Head()
	if head == nil {
		return nil
	}
	style := doc.CreateElement("style")
	style.SetText(Stylesheet())
	head.Append(style)
	return style
}
