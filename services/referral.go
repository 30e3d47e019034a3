package services

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// EncodeReferralSlug turns a client's display name into their share-link slug.
// The name is trimmed and lowercased, every run of characters outside [a-z0-9]
// collapses to a single hyphen, and leading/trailing hyphens are stripped.
// Encoding is lossy: "José García" and "Jose Garcia" may collide, and
// collisions are accepted silently.
func EncodeReferralSlug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// DecodeReferralSlug reconstructs a display name from a slug: hyphen-separated
// tokens are capitalized and joined with spaces. The round trip is not exact;
// the decoded name is for greeting copy only, never identity.
func DecodeReferralSlug(slug string) string {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// RecordReferralVisit logs a hit on a referral landing page. The write runs
// in the background; page rendering never waits on it and failures are only
// logged.
func RecordReferralVisit(db *gorm.DB, slug, ip, userAgent string) {
	visit := models.ReferralVisit{
		Slug:         slug,
		ReferrerName: DecodeReferralSlug(slug),
		IPAddress:    ip,
		UserAgent:    userAgent,
	}
	go func() {
		if err := db.Create(&visit).Error; err != nil {
			log.Printf("Error recording referral visit for slug %q: %v", slug, err)
		}
	}()
}

// CountReferralVisits returns the number of recorded visits for a slug.
func CountReferralVisits(db *gorm.DB, slug string) (int64, error) {
	var count int64
	err := db.Model(&models.ReferralVisit{}).Where("slug = ?", slug).Count(&count).Error
	return count, err
}

// CountReferralLeads returns the number of leads attributed to a slug.
func CountReferralLeads(db *gorm.DB, slug string) (int64, error) {
	var count int64
	err := db.Model(&models.Lead{}).Where("referral_slug = ?", slug).Count(&count).Error
	return count, err
}

// CountReferralConversions returns the number of attributed leads a staff
// member has marked converted.
func CountReferralConversions(db *gorm.DB, slug string) (int64, error) {
	var count int64
	err := db.Model(&models.Lead{}).
		Where("referral_slug = ? AND status = ?", slug, models.LeadStatusConverted).
		Count(&count).Error
	return count, err
}
