package domain

import "time"

type Company struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PointBalance  int32     `json:"point_balance"`
	MaxActiveJobs int32     `json:"max_active_jobs"`
	CreatedOn     time.Time `json:"created_on"`
}
