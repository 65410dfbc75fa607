package features

import (
	"bytes"
	"errors"

	"github.com/beevik/etree"
)

// addURLScheme adds a CFBundleURLTypes entry for scheme to an Info.plist.
// A plist that already lists the scheme is returned unchanged.
func addURLScheme(src []byte, name, scheme string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(src); err != nil {
		return nil, err
	}

	dict := doc.FindElement("/plist/dict")
	if dict == nil {
		return nil, errors.New("no top-level <dict> in plist")
	}
	for _, s := range dict.FindElements("./array/dict/array/string") {
		if s.Text() == scheme {
			return src, nil
		}
	}

	types := plistValue(dict, "CFBundleURLTypes")
	if types == nil {
		dict.CreateElement("key").SetText("CFBundleURLTypes")
		types = dict.CreateElement("array")
	}

	entry := types.CreateElement("dict")
	entry.CreateElement("key").SetText("CFBundleURLName")
	entry.CreateElement("string").SetText(name)
	entry.CreateElement("key").SetText("CFBundleURLSchemes")
	entry.CreateElement("array").CreateElement("string").SetText(scheme)

	doc.IndentTabs()
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// plistValue returns the element following <key>name</key> in dict.
func plistValue(dict *etree.Element, name string) *etree.Element {
	children := dict.ChildElements()
	for i, c := range children {
		if c.Tag == "key" && c.Text() == name && i+1 < len(children) {
			return children[i+1]
		}
	}
	return nil
}
