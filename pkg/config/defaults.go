package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "billboardbids"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort    = "3010"
	DefaultBaseURL = "http://localhost:3010"

	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB JSON bodies

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPlatformFeeRate = 0.20

	DefaultUploadDir     = "uploads"
	DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB creatives

	DefaultOwnerAlertEmail = "owner@example.com"

	DefaultPaginationLimit = 100
)

// Billboard statuses and booking lifecycle values shared across packages.
const (
	BookingPendingPayment = "pending_payment"
	BookingConfirmed      = "confirmed"
	BookingCancelled      = "cancelled"

	ApprovalPending       = "pending"
	ApprovalPendingReview = "pending_review"
	ApprovalApproved      = "approved"
	ApprovalRejected      = "rejected"
)
