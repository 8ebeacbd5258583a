package redirect

import (
	"bytes"
	"html/template"

	"github.com/link-services/link-gateway-backend/pkg/api"
	"github.com/rs/zerolog/log"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.Image}}">
<meta property="og:url" content="{{.URL}}">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.Image}}">
{{if .Favicon}}<link rel="icon" href="{{.Favicon}}">{{end}}
<meta http-equiv="refresh" content="0;url={{.URL}}">
</head>
<body>
<p>Redirecting to <a href="{{.URL}}">{{.URL}}</a>&hellip;</p>
</body>
</html>
`))

var bannedTemplate = template.Must(template.New("banned").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Link unavailable</title>
</head>
<body>
<h1>This link has been disabled</h1>
<p>The short link {{.Domain}}/{{.Key}} was taken down for violating our terms of service.</p>
</body>
</html>
`))

var expiredTemplate = template.Must(template.New("expired").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Link expired</title>
</head>
<body>
<h1>This link has expired</h1>
<p>The short link {{.Domain}}/{{.Key}} is no longer active.</p>
</body>
</html>
`))

type previewData struct {
	Title       string
	Description string
	Image       string
	URL         string
	Favicon     string
}

func renderPreview(link api.LinkResponse) string {
	return render(previewTemplate, previewData{
		Title:       link.Title,
		Description: link.Description,
		Image:       link.Image,
		URL:         link.URL,
		Favicon:     faviconFor(link.URL),
	})
}

type terminalPageData struct {
	Domain string
	Key    string
}

func renderBanned(link api.LinkResponse) string {
	return render(bannedTemplate, terminalPageData{Domain: link.Domain, Key: link.Key})
}

func renderExpired(link api.LinkResponse) string {
	return render(expiredTemplate, terminalPageData{Domain: link.Domain, Key: link.Key})
}

func render(tmpl *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("template", tmpl.Name()).Msg("failed to render page")
		return ""
	}
	return buf.String()
}
