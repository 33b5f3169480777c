package request

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType reads X-Client-Type and falls back to sniffing the
// user agent. Anything that looks like a browser is treated as web.
func ResolveClientType(c *gin.Context) string {
	switch strings.ToLower(strings.TrimSpace(c.GetHeader("X-Client-Type"))) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(c.GetHeader("User-Agent"))
	if strings.Contains(ua, "mozilla") {
		return ClientWeb
	}
	return ClientMobile
}

func IsWebClient(c *gin.Context) bool {
	return ResolveClientType(c) == ClientWeb
}
