package constvars

const (
	RedisKeyRevokedTokenFormat   = "session:revoked:%s"
	RedisKeyAppointmentLockFmt   = "lock:appointment:%s"
	RedisKeyPaymentLockFmt       = "lock:payment:%s"
	RedisKeyReminderLeaderLock   = "reminders:leader"
	RedisKeyEmailWorkerLock      = "email:worker:lock"
	RedisRevokedTokenMarkerValue = "1"
)
