package render

import "fmt"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsA   = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR   = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsP   = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relNS = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	ctPML = `application/vnd.openxmlformats-officedocument.presentationml`
)

const clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

const emptyTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

var contentTypesTmpl = mustTemplate("content-types", xmlHeader+
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
	`<Default Extension="xml" ContentType="application/xml"/>`+
	`<Override PartName="/ppt/presentation.xml" ContentType="`+ctPML+`.presentation.main+xml"/>`+
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="`+ctPML+`.slideMaster+xml"/>`+
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="`+ctPML+`.slideLayout+xml"/>`+
	`<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="`+ctPML+`.notesMaster+xml"/>`+
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`+
	`<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`+
	`{{range $i, $s := .Slides}}`+
	`<Override PartName="/ppt/slides/slide{{add $i 1}}.xml" ContentType="`+ctPML+`.slide+xml"/>`+
	`{{if $s.Notes}}<Override PartName="/ppt/notesSlides/notesSlide{{add $i 1}}.xml" ContentType="`+ctPML+`.notesSlide+xml"/>{{end}}`+
	`{{end}}`+
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`+
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`+
	`</Types>`)

var rootRelsTmpl = mustTemplate("root-rels", xmlHeader+
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/officeDocument" Target="ppt/presentation.xml"/>`+
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`+
	`<Relationship Id="rId3" Type="`+relNS+`/extended-properties" Target="docProps/app.xml"/>`+
	`</Relationships>`)

var coreTmpl = mustTemplate("core", xmlHeader+
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
	`<dc:title>{{xml .Title}}</dc:title><dc:creator>searchai</dc:creator>`+
	`<dcterms:created xsi:type="dcterms:W3CDTF">{{w3c .Created}}</dcterms:created>`+
	`</cp:coreProperties>`)

var appTmpl = mustTemplate("app", xmlHeader+
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
	`<Application>searchai</Application><Slides>{{len .Slides}}</Slides>`+
	`</Properties>`)

// Relationship ids: rId1 master, rId2 theme, rId3 notes master, rId4+ slides.
var presentationTmpl = mustTemplate("presentation", xmlHeader+
	`<p:presentation `+nsA+` `+nsR+` `+nsP+` saveSubsetFonts="1">`+
	`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
	`<p:notesMasterIdLst><p:notesMasterId r:id="rId3"/></p:notesMasterIdLst>`+
	`<p:sldIdLst>{{range $i, $s := .Slides}}<p:sldId id="{{add $i 256}}" r:id="rId{{add $i 4}}"/>{{end}}</p:sldIdLst>`+
	`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`+
	`</p:presentation>`)

var presentationRelsTmpl = mustTemplate("presentation-rels", xmlHeader+
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideMaster" Target="slideMasters/slideMaster1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/theme" Target="theme/theme1.xml"/>`+
	`<Relationship Id="rId3" Type="`+relNS+`/notesMaster" Target="notesMasters/notesMaster1.xml"/>`+
	`{{range $i, $s := .Slides}}<Relationship Id="rId{{add $i 4}}" Type="`+relNS+`/slide" Target="slides/slide{{add $i 1}}.xml"/>{{end}}`+
	`</Relationships>`)

var slideTmpl = mustTemplate("slide", xmlHeader+
	`<p:sld `+nsA+` `+nsR+` `+nsP+`><p:cSld><p:spTree>`+emptyTree+
	`{{if .First}}`+
	textBox(2, "Title", 609600, 2130425, 10972800, 1470025, `<a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="4400" b="1"/><a:t>{{xml .Slide.Title}}</a:t></a:r></a:p>`)+
	`{{if .Slide.Subtitle}}`+
	textBox(3, "Subtitle", 1219200, 3886200, 9753600, 1752600, `<a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="2400"/><a:t>{{xml .Slide.Subtitle}}</a:t></a:r></a:p>`)+
	`{{end}}`+
	`{{else}}`+
	textBox(2, "Title", 457200, 274320, 11277600, 1143000, `<a:p><a:r><a:rPr lang="en-US" sz="3200" b="1"/><a:t>{{xml .Slide.Title}}</a:t></a:r></a:p>`)+
	textBox(3, "Content", 457200, 1554480, 11277600, 4754880,
		`{{if .Slide.Subtitle}}<a:p><a:r><a:rPr lang="en-US" sz="2200" i="1"/><a:t>{{xml .Slide.Subtitle}}</a:t></a:r></a:p>{{end}}`+
			`{{range .Slide.Bullets}}<a:p><a:pPr marL="342900" indent="-342900"><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr><a:r><a:rPr lang="en-US" sz="2000"/><a:t>{{xml .}}</a:t></a:r></a:p>{{end}}`+
			`{{if not .Slide.Bullets}}<a:p><a:endParaRPr lang="en-US"/></a:p>{{end}}`)+
	`{{end}}`+
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)

var slideRelsTmpl = mustTemplate("slide-rels", xmlHeader+
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`+
	`{{if .Slide.Notes}}<Relationship Id="rId2" Type="`+relNS+`/notesSlide" Target="../notesSlides/notesSlide{{.Index}}.xml"/>{{end}}`+
	`</Relationships>`)

var notesSlideTmpl = mustTemplate("notes-slide", xmlHeader+
	`<p:notes `+nsA+` `+nsR+` `+nsP+`><p:cSld><p:spTree>`+emptyTree+
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>`+
	`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US"/><a:t>{{xml .Slide.Notes}}</a:t></a:r></a:p></p:txBody></p:sp>`+
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)

var notesSlideRelsTmpl = mustTemplate("notes-slide-rels", xmlHeader+
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
	`<Relationship Id="rId1" Type="`+relNS+`/notesMaster" Target="../notesMasters/notesMaster1.xml"/>`+
	`<Relationship Id="rId2" Type="`+relNS+`/slide" Target="../slides/slide{{.Index}}.xml"/>`+
	`</Relationships>`)

func textBox(id int, name string, x, y, cx, cy int, paragraphs string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, name, x, y, cx, cy, paragraphs)
}

const slideMasterXML = xmlHeader +
	`<p:sldMaster ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
	clrMap +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relNS + `/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="` + relNS + `/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xmlHeader +
	`<p:sldLayout ` + nsA + ` ` + nsR + ` ` + nsP + ` type="blank" preserve="1"><p:cSld name="Blank"><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relNS + `/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const notesMasterXML = xmlHeader +
	`<p:notesMaster ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld><p:spTree>` + emptyTree +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="685800" y="4343400"/><a:ext cx="5486400" cy="4114800"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr lang="en-US"/></a:p></p:txBody></p:sp>` +
	`</p:spTree></p:cSld>` + clrMap + `</p:notesMaster>`

const notesMasterRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relNS + `/theme" Target="../theme/theme2.xml"/>` +
	`</Relationships>`

const themeXML = xmlHeader +
	`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="searchai">` +
	`<a:themeElements>` +
	`<a:clrScheme name="searchai">` +
	`<a:dk1><a:srgbClr val="1F2933"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="243B53"/></a:dk2><a:lt2><a:srgbClr val="F0F4F8"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="2680C2"/></a:accent1><a:accent2><a:srgbClr val="3EBD93"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="F0B429"/></a:accent3><a:accent4><a:srgbClr val="EF4E4E"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="9446ED"/></a:accent5><a:accent6><a:srgbClr val="627D98"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="2680C2"/></a:hlink><a:folHlink><a:srgbClr val="9446ED"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="searchai">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="searchai">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`
