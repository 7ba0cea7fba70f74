package models

// Influencer is one row of the ranking dataset. StoreName and Region are
// optional; Username and Followers are required on every persisted row.
//
// The JSON tags define the public response shape: the store_name column is
// exposed as storeName.
type Influencer struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Followers  int64  `json:"followers"`
	StoreName  string `json:"storeName"`
	Popularity int64  `json:"popularity"`
	Region     string `json:"region"`
}
