package goStats

// MetricID identifies one entry of the built-in notification metrics catalog.
//
// IDs index the registry's counter table directly; the order below is the
// order in which snapshots list metrics.
type MetricID uint16

const (
	// Plugin-wide request outcomes.
	MetricRequestTotal MetricID = iota
	MetricRequestCount
	MetricRequestSuccess
	MetricRequestUserError
	MetricRequestSystemError

	// Request failures by error class.
	MetricExceptionOSStatus
	MetricExceptionOSSecurity
	MetricExceptionVersionConflictEngine
	MetricExceptionIndexNotFound
	MetricExceptionInvalidIndexName
	MetricExceptionIllegalArgument
	MetricExceptionIllegalState
	MetricExceptionIO
	MetricExceptionInternalServerError

	// POST _plugins/_notifications/configs
	MetricConfigCreateTotal
	MetricConfigCreateCount
	MetricConfigCreateSystemError

	// PUT _plugins/_notifications/configs/{config_id}
	MetricConfigUpdateTotal
	MetricConfigUpdateCount
	MetricConfigUpdateUserErrorInvalidConfigID
	MetricConfigUpdateSystemError

	// Config validation errors shared by create and update.
	MetricConfigUserErrorInvalidEmailAccountID
	MetricConfigUserErrorInvalidEmailGroupID
	MetricConfigUserErrorNeitherEmailNorGroup

	// DELETE _plugins/_notifications/configs/{config_id}
	MetricConfigDeleteTotal
	MetricConfigDeleteCount
	MetricConfigDeleteUserErrorInvalidConfigID
	MetricConfigDeleteSystemError

	// DELETE _plugins/_notifications/configs?config_id_list=...
	MetricConfigDeleteListTotal
	MetricConfigDeleteListCount
	MetricConfigDeleteListUserErrorInvalidConfigID
	MetricConfigDeleteListSystemError

	// GET _plugins/_notifications/configs/{config_id}
	MetricConfigInfoTotal
	MetricConfigInfoCount
	MetricConfigInfoUserErrorInvalidConfigID
	MetricConfigInfoSystemError

	// GET _plugins/_notifications/configs
	MetricConfigListTotal
	MetricConfigListCount
	MetricConfigListUserErrorInvalidFromIndex
	MetricConfigListSystemError

	// GET _plugins/_notifications/events/{event_id}
	MetricEventsInfoTotal
	MetricEventsInfoCount
	MetricEventsInfoUserErrorInvalidConfigID
	MetricEventsInfoSystemError

	// GET _plugins/_notifications/events
	MetricEventsListTotal
	MetricEventsListCount
	MetricEventsListUserErrorInvalidConfigID
	MetricEventsListUserErrorInvalidFromIndex
	MetricEventsListSystemError

	// GET _plugins/_notifications/feature/channels/{feature_tag}
	MetricFeatureChannelsInfoTotal
	MetricFeatureChannelsInfoCount
	MetricFeatureChannelsInfoUserErrorInvalidFeatureTag
	MetricFeatureChannelsInfoUserErrorInvalidFromIndex
	MetricFeatureChannelsInfoSystemError

	// GET _plugins/_notifications/features
	MetricFeaturesInfoTotal
	MetricFeaturesInfoCount
	MetricFeaturesInfoUserErrorInvalidFromIndex
	MetricFeaturesInfoSystemError

	// POST _plugins/_notifications/send
	MetricSendMessageTotal
	MetricSendMessageCount
	MetricSendMessageUserErrorNotFound
	MetricSendMessageSystemError

	// Messages delivered per destination type.
	MetricMessageDestinationSlack
	MetricMessageDestinationChime
	MetricMessageDestinationWebhook
	MetricMessageDestinationEmail
	MetricMessageDestinationSESAccount
	MetricMessageDestinationSMTPAccount
	MetricMessageDestinationEmailGroup
	MetricMessageDestinationSNS

	// GET _plugins/_notifications/feature/test/{config_id}
	MetricSendTestMessageTotal
	MetricSendTestMessageCount

	// Authorization failures.
	MetricSecurityUserError
	MetricPermissionUserError

	metricIDCount
)
