package controllers

import "github.com/Brayzonn/shortlink/internal/models"

// faviconPayload иконка ссылки в ответе API. Image сериализуется в base64.
type faviconPayload struct {
	SourceURL *string `json:"sourceUrl,omitempty"`
	Image     []byte  `json:"image"`
	MIMEType  string  `json:"mimeType"`
}

// linkPayload запись ссылки в ответе API.
type linkPayload struct {
	models.Link
	Favicon *faviconPayload `json:"favicon"`
}

func newLinkPayload(link models.Link) linkPayload {
	p := linkPayload{Link: link}
	if link.HasFavicon() {
		mimeType := link.FaviconMIME
		if mimeType == "" {
			mimeType = models.DefaultFaviconMIME
		}
		p.Favicon = &faviconPayload{
			SourceURL: link.FaviconURL,
			Image:     link.FaviconImage,
			MIMEType:  mimeType,
		}
	}
	return p
}

func newLinkPayloads(links []models.Link) []linkPayload {
	payloads := make([]linkPayload, len(links))
	for i, link := range links {
		payloads[i] = newLinkPayload(link)
	}
	return payloads
}
