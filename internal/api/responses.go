package api

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func deleted(id int64) DeleteResponse {
	return DeleteResponse{Deleted: true, ID: id, Message: "deleted"}
}

// Messages returned by failing handlers when the cause is server-side.
const (
	msgQueryFailed  = "query failed"
	msgInsertFailed = "insert failed"
	msgUpdateFailed = "update failed"
	msgDeleteFailed = "delete failed"
)
