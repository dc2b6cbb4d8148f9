package api

import "time"

type ResponseError struct {
	Message   string `json:"message,omitempty"`
	Type      string `json:"type,omitempty"`
	Code      string `json:"code,omitempty"`
	Param     string `json:"param,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type VolumeInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Detached bool      `json:"detached"`
}

type VolumeList struct {
	Object string       `json:"object"`
	Data   []VolumeInfo `json:"data"`
}

type VolumeStats struct {
	Name     string   `json:"name"`
	DType    string   `json:"dtype"`
	Order    string   `json:"order"`
	Shape    []int    `json:"shape"`
	Count    int      `json:"count"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Mean     *float64 `json:"mean"`
	NaNs     int      `json:"nans"`
	Encoding string   `json:"encoding,omitempty"`
}
