package store

// Region is one of the administrative regions of Chile.
type Region struct {
	ID        int32
	Code      string // short code, e.g. "RM", "V"
	Name      string
	CreatedTs int64
	UpdatedTs int64
}

type FindRegion struct {
	ID       *int32
	NameLike *string
}

// Commune belongs to exactly one Region.
type Commune struct {
	ID        int32
	RegionID  int32
	Name      string
	CreatedTs int64
	UpdatedTs int64
}

type FindCommune struct {
	ID       *int32
	RegionID *int32
	NameLike *string
}

type Condominium struct {
	ID           int32
	RUT          string
	Name         string
	Address      string
	RegionID     int32
	CommuneID    int32
	ContactEmail string
	CreatedTs    int64
	UpdatedTs    int64

	// Populated by ListCondominiums with a JOIN.
	RegionName  string
	CommuneName string
}

type FindCondominium struct {
	ID             *int32
	NameLike       *string
	RegionNameLike *string
}
