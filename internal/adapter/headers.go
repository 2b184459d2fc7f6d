package adapter

const (
	acceptAll      = "*/*"
	acceptDocument = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	acceptLanguage = "vi-VN,vi;q=0.9,fr-FR;q=0.8,fr;q=0.7,en-US;q=0.6,en;q=0.5"
	secChUA        = `"Chromium";v="130", "Google Chrome";v="130", "Not?A_Brand";v="99"`
	formURLEncoded = "application/x-www-form-urlencoded"

	// continue targets understood by the account host
	continuePC       = "https://zalo.me/pc"
	continueChat     = "https://chat.zalo.me/"
	continueChatPage = "https://chat.zalo.me/index.html"
)

// browserHeaders mimics a desktop Chrome. dest and site follow the
// sec-fetch-* vocabulary ("empty"/"document", "same-origin"/"same-site").
func browserHeaders(accept, priority, dest, mode, site, referer string) map[string]string {
	h := map[string]string{
		"Accept":             accept,
		"Priority":           priority,
		"Accept-Language":    acceptLanguage,
		"Sec-Ch-Ua":          secChUA,
		"Sec-Ch-Ua-Mobile":   "?0",
		"Sec-Ch-Ua-Platform": `"Windows"`,
		"Sec-Fetch-Dest":     dest,
		"Sec-Fetch-Mode":     mode,
		"Sec-Fetch-Site":     site,
		"Referrer-Policy":    "strict-origin-when-cross-origin",
	}
	if referer != "" {
		h["Referer"] = referer
	}
	return h
}

func apiHeaders(site, referer string) map[string]string {
	return browserHeaders(acceptAll, "u=1, i", "empty", "cors", site, referer)
}

func documentHeaders(referer string) map[string]string {
	h := browserHeaders(acceptDocument, "u=0, i", "document", "navigate", "same-origin", referer)
	h["Upgrade-Insecure-Requests"] = "1"
	return h
}
