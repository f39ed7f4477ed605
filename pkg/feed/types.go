package feed

import (
	"encoding/xml"
)

const (
	atomNS  = "http://www.w3.org/2005/Atom"
	xhtmlNS = "http://www.w3.org/1999/xhtml"
)

// atomFeed represents the root atom:feed element
type atomFeed struct {
	XMLName      xml.Name       `xml:"feed"`
	Xmlns        string         `xml:"xmlns,attr"`
	Lang         string         `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	ID           string         `xml:"id"`
	Title        atomText       `xml:"title"`
	Subtitle     *atomText      `xml:"subtitle,omitempty"`
	Updated      string         `xml:"updated,omitempty"`
	Authors      []atomPerson   `xml:"author"`
	Contributors []atomPerson   `xml:"contributor"`
	Categories   []atomCategory `xml:"category"`
	Generator    *atomGenerator `xml:"generator,omitempty"`
	Icon         string         `xml:"icon,omitempty"`
	Logo         string         `xml:"logo,omitempty"`
	Rights       *atomText      `xml:"rights,omitempty"`
	Links        []atomLink     `xml:"link"`
	Entries      []atomEntry    `xml:"entry"`
}

// atomEntry represents an atom:entry element
type atomEntry struct {
	ID           string         `xml:"id"`
	Title        atomText       `xml:"title"`
	Updated      string         `xml:"updated,omitempty"`
	Published    string         `xml:"published,omitempty"`
	Authors      []atomPerson   `xml:"author"`
	Contributors []atomPerson   `xml:"contributor"`
	Categories   []atomCategory `xml:"category"`
	Links        []atomLink     `xml:"link"`
	Summary      *atomText      `xml:"summary,omitempty"`
	Content      *atomContent   `xml:"content,omitempty"`
	Rights       *atomText      `xml:"rights,omitempty"`
}

// atomText is a text construct, xhtml markup goes to Inner like in atomContent
type atomText struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

// atomContent keeps xhtml markup in Inner, everything else is escaped into Value
type atomContent struct {
	Type  string `xml:"type,attr,omitempty"`
	Lang  string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	Src   string `xml:"src,attr,omitempty"`
	Value string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

type atomPerson struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
	URI   string `xml:"uri,omitempty"`
}

type atomCategory struct {
	Term   string `xml:"term,attr"`
	Scheme string `xml:"scheme,attr,omitempty"`
	Label  string `xml:"label,attr,omitempty"`
}

type atomGenerator struct {
	URI     string `xml:"uri,attr,omitempty"`
	Version string `xml:"version,attr,omitempty"`
	Value   string `xml:",chardata"`
}

// atomLink represents an atom:link element
type atomLink struct {
	Href     string `xml:"href,attr"`
	Rel      string `xml:"rel,attr,omitempty"`
	Type     string `xml:"type,attr,omitempty"`
	Hreflang string `xml:"hreflang,attr,omitempty"`
	Title    string `xml:"title,attr,omitempty"`
	Length   string `xml:"length,attr,omitempty"`
}
