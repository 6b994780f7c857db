package models

// GuestKey identifies a guest in the cache. Legacy guest ids are only unique
// within their category, so the natural key is the pair.
type GuestKey struct {
	Category string
	ID       string
}

// Guest is a conference guest persisted in the local cache.
//
// Photo holds lazily cached image bytes; it is populated by the photo
// service, never by sync, and sync must not clear it.
type Guest struct {
	ID       string
	Category string

	FirstName string
	LastName  string
	Bio       string

	PhotoURL      string
	HiResPhotoURL string

	// GuestOfHonor comes from the legacy "goh" flag, which is the string
	// "Y" when set.
	GuestOfHonor bool

	Photo []byte
}

// Key returns the (category, id) pair used as the cache primary key.
func (g *Guest) Key() GuestKey {
	return GuestKey{Category: g.Category, ID: g.ID}
}

// FullName joins the first and last name, tolerating either being empty.
func (g *Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	default:
		return g.FirstName + " " + g.LastName
	}
}

// GuestPatch is a partial update produced by the mapper. Nil fields mean
// "leave the current value untouched".
type GuestPatch struct {
	ID       string
	Category string

	FirstName     *string
	LastName      *string
	Bio           *string
	PhotoURL      *string
	HiResPhotoURL *string
	GuestOfHonor  *bool

	Skipped []SkippedField
}

// Key returns the (category, id) pair the patch targets.
func (p *GuestPatch) Key() GuestKey {
	return GuestKey{Category: p.Category, ID: p.ID}
}

// Apply copies every populated patch field onto g. The cached photo bytes
// are deliberately not part of the patch.
func (p *GuestPatch) Apply(g *Guest) {
	if p.ID != "" {
		g.ID = p.ID
	}
	if p.Category != "" {
		g.Category = p.Category
	}
	if p.FirstName != nil {
		g.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		g.LastName = *p.LastName
	}
	if p.Bio != nil {
		g.Bio = *p.Bio
	}
	if p.PhotoURL != nil {
		g.PhotoURL = *p.PhotoURL
	}
	if p.HiResPhotoURL != nil {
		g.HiResPhotoURL = *p.HiResPhotoURL
	}
	if p.GuestOfHonor != nil {
		g.GuestOfHonor = *p.GuestOfHonor
	}
}
