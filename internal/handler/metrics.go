package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/taskmate/taskmate/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "taskmate_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "taskmate_users_verified_total %d\n", snap.UsersVerified)
	writeMetric(w, "taskmate_verify_failed_total %d\n", snap.VerifyFailed)

	writeMetric(w, "taskmate_logins_total{result=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "taskmate_logins_total{result=\"failed\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "taskmate_logins_total{result=\"rate_limited\"} %d\n", snap.LoginsRateLimited)

	writeMetric(w, "taskmate_otp_mails_total{status=\"sent\"} %d\n", snap.OTPMailsSent)
	writeMetric(w, "taskmate_otp_mails_total{status=\"failed\"} %d\n", snap.OTPMailsFailed)
	writeMetric(w, "taskmate_mail_duration_seconds_count %d\n", snap.MailDurationCount)
	writeMetric(w, "taskmate_mail_duration_seconds_sum %.6f\n", float64(snap.MailDurationTotalNs)/1e9)

	writeMetric(w, "taskmate_tasks_added_total %d\n", snap.TasksAdded)
	writeMetric(w, "taskmate_tasks_removed_total %d\n", snap.TasksRemoved)
	writeMetric(w, "taskmate_tasks_toggled_total %d\n", snap.TasksToggled)
}

func writeMetric(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
