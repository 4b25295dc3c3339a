package scoring

import (
	"fmt"
	"strings"

	"github.com/ravik808/sitetrust/internal/model"
)

const certMaxScore = 20

// ScoreCertificate rates the TLS certificate: 0 when absent or invalid, 20
// when the issuer matches the trusted set, 10 for any other valid cert.
// The issuer check is case-sensitive substring containment against the
// organization field, falling back to the common name; crude on purpose,
// issuer strings in the wild embed the CA name in varying decorations.
func ScoreCertificate(rec *model.CertificateRecord, t *Tables) *model.ScoreComponent {
	c := &model.ScoreComponent{MaxScore: certMaxScore}

	if rec == nil {
		c.Reason = "No SSL certificate detected"
		return c
	}
	if !rec.Valid {
		c.Reason = "SSL certificate is invalid or expired"
		return c
	}

	issuer := rec.Issuer["organization"]
	if issuer == "" {
		issuer = rec.Issuer["common_name"]
	}
	for _, trusted := range t.TrustedIssuers {
		if strings.Contains(issuer, trusted) {
			c.Score = certMaxScore
			c.Reason = fmt.Sprintf("Valid certificate from trusted issuer (%s)", issuer)
			return c
		}
	}

	c.Score = 10
	c.Reason = "Valid certificate from a less common issuer"
	return c
}
