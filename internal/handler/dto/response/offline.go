package response

import (
	"time"

	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/usecase"
)

type SyncResultResponse struct {
	Replayed        int       `json:"replayed"`
	Remaining       int       `json:"remaining"`
	FailedOperation string    `json:"failedOperation,omitempty"`
	FinishedAt      time.Time `json:"finishedAt"`
}

type OfflineStateResponse struct {
	IsOffline       bool                     `json:"isOffline"`
	IsSyncing       bool                     `json:"isSyncing"`
	QueueLength     int                      `json:"queueLength"`
	OfflinePayments []OfflinePaymentResponse `json:"offlinePayments"`
	LastSync        *SyncResultResponse      `json:"lastSync,omitempty"`
}

func FromSyncResult(r usecase.SyncResult) SyncResultResponse {
	return copyAs[SyncResultResponse](&r)
}

func FromPOSState(st usecase.POSState) OfflineStateResponse {
	resp := OfflineStateResponse{
		IsOffline:       st.IsOffline,
		IsSyncing:       st.IsSyncing,
		QueueLength:     st.QueueLength,
		OfflinePayments: FromOfflinePayments(st.OfflinePayments),
	}
	if st.LastSync != nil {
		last := FromSyncResult(*st.LastSync)
		resp.LastSync = &last
	}
	return resp
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromNotifications(ns []notify.Notification) []NotificationResponse {
	return copyAll[NotificationResponse](ns)
}
