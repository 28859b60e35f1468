// Package transport defines the response DTOs of the analytics module.
package transport

type DailyStat struct {
	Date      string `json:"date"`
	Uploaded  int    `json:"uploaded"`
	Completed int    `json:"completed"`
}

type UserPerformance struct {
	Username  string `json:"username"`
	Assigned  int    `json:"assigned"`
	Completed int    `json:"completed"`
}

type SummaryResponse struct {
	Daily           []DailyStat       `json:"daily"`
	UserPerformance []UserPerformance `json:"userPerformance"`
}
