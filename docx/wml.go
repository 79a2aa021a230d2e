package docx

import "encoding/xml"

// The types below are written to word/document.xml. Element and attribute
// names carry their prefixes literally; the namespaces are declared on the
// root element.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	WP      string   `xml:"xmlns:wp,attr"`
	A       string   `xml:"xmlns:a,attr"`
	Pic     string   `xml:"xmlns:pic,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
}

type wParagraph struct {
	Runs []wRun `xml:"w:r"`
}

// wRun holds exactly one content element.
type wRun struct {
	Props   *wRunProps `xml:"w:rPr,omitempty"`
	Text    *wText     `xml:"w:t,omitempty"`
	Tab     *wEmpty    `xml:"w:tab,omitempty"`
	Break   *wEmpty    `xml:"w:br,omitempty"`
	Drawing *wDrawing  `xml:"w:drawing,omitempty"`
}

// wRunProps fields follow the element order required by the schema.
type wRunProps struct {
	Fonts     *wFonts `xml:"w:rFonts,omitempty"`
	Bold      *wEmpty `xml:"w:b,omitempty"`
	Italic    *wEmpty `xml:"w:i,omitempty"`
	Color     *wVal   `xml:"w:color,omitempty"`
	Spacing   *wVal   `xml:"w:spacing,omitempty"`
	Size      *wVal   `xml:"w:sz,omitempty"`
	Underline *wVal   `xml:"w:u,omitempty"`
}

type wEmpty struct{}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wDrawing struct {
	Inline wInline `xml:"wp:inline"`
}

type wInline struct {
	Extent  wExtent  `xml:"wp:extent"`
	DocPr   wDocPr   `xml:"wp:docPr"`
	Graphic wGraphic `xml:"a:graphic"`
}

type wExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type wDocPr struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type wGraphic struct {
	Data wGraphicData `xml:"a:graphicData"`
}

type wGraphicData struct {
	URI string `xml:"uri,attr"`
	Pic wPic   `xml:"pic:pic"`
}

type wPic struct {
	NvPicPr  wNvPicPr  `xml:"pic:nvPicPr"`
	BlipFill wBlipFill `xml:"pic:blipFill"`
	SpPr     wSpPr     `xml:"pic:spPr"`
}

type wNvPicPr struct {
	CNvPr    wDocPr `xml:"pic:cNvPr"`
	CNvPicPr wEmpty `xml:"pic:cNvPicPr"`
}

type wBlipFill struct {
	Blip    wBlip    `xml:"a:blip"`
	Stretch wStretch `xml:"a:stretch"`
}

type wBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type wStretch struct {
	FillRect wEmpty `xml:"a:fillRect"`
}

type wSpPr struct {
	Xfrm     wXfrm     `xml:"a:xfrm"`
	PrstGeom wPrstGeom `xml:"a:prstGeom"`
}

type wXfrm struct {
	Off wOffset `xml:"a:off"`
	Ext wExtent `xml:"a:ext"`
}

type wOffset struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type wPrstGeom struct {
	Prst  string `xml:"prst,attr"`
	AvLst wEmpty `xml:"a:avLst"`
}

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	XMLName   xml.Name              `xml:"Types"`
	Xmlns     string                `xml:"xmlns,attr"`
	Defaults  []contentTypeDefault  `xml:"Default"`
	Overrides []contentTypeOverride `xml:"Override"`
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}
