package models

// ClusterDraftRecord is the persisted form of a cluster draft produced by
// the clustering engine. Params are stored as a JSON document; member ids
// as a JSON array.
type ClusterDraftRecord struct {
	ID          int64   `json:"id" db:"id"`
	Algorithm   string  `json:"algorithm" db:"algorithm"`
	CentroidLat float64 `json:"centroidLat" db:"centroid_lat"`
	CentroidLon float64 `json:"centroidLon" db:"centroid_lon"`
	ParamsJSON  string  `json:"params" db:"params_json"`
	MembersJSON string  `json:"members" db:"members_json"`
	MemberCount int     `json:"memberCount" db:"member_count"`
	CreatedAt   *string `json:"createdAt,omitempty" db:"created_at"`
}

// ClusterDraftFilter represents filter parameters for querying drafts
type ClusterDraftFilter struct {
	Algorithm string `form:"algorithm"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
