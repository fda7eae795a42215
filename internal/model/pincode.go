package model

type Pincode struct {
	Pincode string  `json:"pincode"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
