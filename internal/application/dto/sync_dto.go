package dto

// Sync anomaly types
const (
	AnomalyOrgFetchFailed  = "org_fetch_failed"
	AnomalyOwnerUnresolved = "owner_unresolved"
	AnomalyRepoSaveFailed  = "repository_save_failed"
)

// SyncAnomalyResponse reports one non-fatal problem encountered during a
// sync pass
type SyncAnomalyResponse struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// SyncResponse represents the outcome of a full sync pass
type SyncResponse struct {
	Message       string                 `json:"message"`
	Organizations int                    `json:"organizations"`
	Repositories  int                    `json:"repositories"`
	Anomalies     []*SyncAnomalyResponse `json:"anomalies"`
}
