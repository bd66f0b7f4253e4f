package models

// ArticleStatus represents the publication workflow state of an article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// ValidArticleStatuses defines allowed article statuses
var ValidArticleStatuses = map[ArticleStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// VerificationStatus represents the state of a reproducibility check run
type VerificationStatus string

const (
	VerificationPending VerificationStatus = "pending"
	VerificationRunning VerificationStatus = "running"
	VerificationPassed  VerificationStatus = "passed"
	VerificationFailed  VerificationStatus = "failed"
)

// ValidVerificationStatuses defines allowed verification statuses
var ValidVerificationStatuses = map[VerificationStatus]bool{
	VerificationPending: true,
	VerificationRunning: true,
	VerificationPassed:  true,
	VerificationFailed:  true,
}

// ContributorRole classifies how a site user contributed to a compendium
type ContributorRole string

const (
	RoleAuthor   ContributorRole = "author"
	RoleEditor   ContributorRole = "editor"
	RoleReviewer ContributorRole = "reviewer"
	RoleCurator  ContributorRole = "curator"
)

// ValidContributorRoles defines allowed contributor roles
var ValidContributorRoles = map[ContributorRole]bool{
	RoleAuthor:   true,
	RoleEditor:   true,
	RoleReviewer: true,
	RoleCurator:  true,
}

// TagType classifies the origin of a tag association
type TagType string

const (
	TagTypeFolksonomic TagType = "folksonomic"
	TagTypeCurated     TagType = "curated"
)

// ValidTagTypes defines allowed tag types
var ValidTagTypes = map[TagType]bool{
	TagTypeFolksonomic: true,
	TagTypeCurated:     true,
}

// ValidContentLicenses defines allowed licenses for paper content
var ValidContentLicenses = map[string]bool{
	"CC0-1.0":             true,
	"CC-BY-4.0":           true,
	"CC-BY-SA-4.0":        true,
	"CC-BY-NC-4.0":        true,
	"CC-BY-ND-4.0":        true,
	"All-Rights-Reserved": true,
}

// ValidCodeLicenses defines allowed licenses for code archives
var ValidCodeLicenses = map[string]bool{
	"MIT":          true,
	"BSD-2-Clause": true,
	"BSD-3-Clause": true,
	"Apache-2.0":   true,
	"GPL-2.0":      true,
	"GPL-3.0":      true,
	"LGPL-3.0":     true,
	"AGPL-3.0":     true,
	"MPL-2.0":      true,
}

// ValidCompendiumTypes defines allowed compendium types. The same value set
// classifies EntryType rows in the table of contents.
var ValidCompendiumTypes = map[string]bool{
	"article":  true,
	"thesis":   true,
	"course":   true,
	"book":     true,
	"software": true,
	"dataset":  true,
	"misc":     true,
}

// DefaultCompendiumType is used when no type was selected
const DefaultCompendiumType = "misc"

// ValidResearchFields defines allowed research field classifications
var ValidResearchFields = map[string]bool{
	"Applied Mathematics": true,
	"Astrophysics":        true,
	"Biology":             true,
	"Chemistry":           true,
	"Computer Science":    true,
	"Earth Science":       true,
	"Economics":           true,
	"Mathematics":         true,
	"Medicine":            true,
	"Neuroscience":        true,
	"Physics":             true,
	"Political Science":   true,
	"Statistics":          true,
}
