package taxonomy

// Category is a business category members are filed under.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is a meeting venue or chapter location.
type Location struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Region groups chapters geographically.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
