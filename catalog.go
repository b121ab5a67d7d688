package goStats

import (
	"fmt"
	"strings"
)

// NameDelimiter separates the segments of a metric name. Nested snapshots
// create one object level per segment.
const NameDelimiter = "."

// MetricDef describes one catalog entry.
type MetricDef struct {
	ID   MetricID
	Name string
	Kind CounterKind
	Help string
}

var defaultDefs = [...]MetricDef{
	// Plugin-wide request outcomes.
	{ID: MetricRequestTotal, Name: "request_total", Kind: KindMonotonic, Help: "All plugin requests since start."},
	{ID: MetricRequestCount, Name: "request_count", Kind: KindRolling, Help: "Plugin requests in the last window."},
	{ID: MetricRequestSuccess, Name: "success_count", Kind: KindRolling, Help: "Successful plugin requests in the last window."},
	{ID: MetricRequestUserError, Name: "failed_request_count_user_error", Kind: KindRolling, Help: "Requests rejected with a 4xx status in the last window."},
	{ID: MetricRequestSystemError, Name: "failed_request_count_system_error", Kind: KindRolling, Help: "Requests failed with a 5xx status in the last window."},

	// Request failures by error class.
	{ID: MetricExceptionOSStatus, Name: "exception.os_status", Kind: KindRolling, Help: "Requests failed with an OpenSearch status error in the last window."},
	{ID: MetricExceptionOSSecurity, Name: "exception.os_security", Kind: KindRolling, Help: "Requests failed with an OpenSearch security error in the last window."},
	{ID: MetricExceptionVersionConflictEngine, Name: "exception.version_conflict_engine", Kind: KindRolling, Help: "Requests failed with a version conflict engine error in the last window."},
	{ID: MetricExceptionIndexNotFound, Name: "exception.index_not_found", Kind: KindRolling, Help: "Requests failed with an index not found error in the last window."},
	{ID: MetricExceptionInvalidIndexName, Name: "exception.invalid_index_name", Kind: KindRolling, Help: "Requests failed with an invalid index name error in the last window."},
	{ID: MetricExceptionIllegalArgument, Name: "exception.illegal_argument", Kind: KindRolling, Help: "Requests failed with an illegal argument error in the last window."},
	{ID: MetricExceptionIllegalState, Name: "exception.illegal_state", Kind: KindRolling, Help: "Requests failed with an illegal state error in the last window."},
	{ID: MetricExceptionIO, Name: "exception.io", Kind: KindRolling, Help: "Requests failed with an I/O error in the last window."},
	{ID: MetricExceptionInternalServerError, Name: "exception.internal_server_error", Kind: KindRolling, Help: "Requests failed with an internal server error in the last window."},

	// POST _plugins/_notifications/configs
	{ID: MetricConfigCreateTotal, Name: "notifications_config.create.total", Kind: KindMonotonic, Help: "All config create requests since start."},
	{ID: MetricConfigCreateCount, Name: "notifications_config.create.count", Kind: KindRolling, Help: "Config create requests in the last window."},
	{ID: MetricConfigCreateSystemError, Name: "notifications_config.create.system_error", Kind: KindRolling, Help: "Config create requests failed with a system error in the last window."},

	// PUT _plugins/_notifications/configs/{config_id}
	{ID: MetricConfigUpdateTotal, Name: "notifications_config.update.total", Kind: KindMonotonic, Help: "All config update requests since start."},
	{ID: MetricConfigUpdateCount, Name: "notifications_config.update.count", Kind: KindRolling, Help: "Config update requests in the last window."},
	{ID: MetricConfigUpdateUserErrorInvalidConfigID, Name: "notifications_config.update.user_error.invalid_config_id", Kind: KindRolling, Help: "Config update requests rejected for an invalid config ID in the last window."},
	{ID: MetricConfigUpdateSystemError, Name: "notifications_config.update.system_error", Kind: KindRolling, Help: "Config update requests failed with a system error in the last window."},

	// Config validation errors shared by create and update.
	{ID: MetricConfigUserErrorInvalidEmailAccountID, Name: "notifications_config.user_error.invalid_email_account_id", Kind: KindRolling, Help: "Config requests rejected for an invalid email account ID in the last window."},
	{ID: MetricConfigUserErrorInvalidEmailGroupID, Name: "notifications_config.user_error.invalid_email_group_id", Kind: KindRolling, Help: "Config requests rejected for an invalid email group ID in the last window."},
	{ID: MetricConfigUserErrorNeitherEmailNorGroup, Name: "notifications_config.user_error.neither_email_nor_group", Kind: KindRolling, Help: "Config requests rejected for having neither email nor group in the last window."},

	// DELETE _plugins/_notifications/configs/{config_id}
	{ID: MetricConfigDeleteTotal, Name: "notifications_config.delete.total", Kind: KindMonotonic, Help: "All config delete requests since start."},
	{ID: MetricConfigDeleteCount, Name: "notifications_config.delete.count", Kind: KindRolling, Help: "Config delete requests in the last window."},
	{ID: MetricConfigDeleteUserErrorInvalidConfigID, Name: "notifications_config.delete.user_error.invalid_config_id", Kind: KindRolling, Help: "Config delete requests rejected for an invalid config ID in the last window."},
	{ID: MetricConfigDeleteSystemError, Name: "notifications_config.delete.system_error", Kind: KindRolling, Help: "Config delete requests failed with a system error in the last window."},

	// DELETE _plugins/_notifications/configs?config_id_list=...
	{ID: MetricConfigDeleteListTotal, Name: "notifications_config.delete_list.total", Kind: KindMonotonic, Help: "All config delete list requests since start."},
	{ID: MetricConfigDeleteListCount, Name: "notifications_config.delete_list.count", Kind: KindRolling, Help: "Config delete list requests in the last window."},
	{ID: MetricConfigDeleteListUserErrorInvalidConfigID, Name: "notifications_config.delete_list.user_error.invalid_config_id", Kind: KindRolling, Help: "Config delete list requests rejected for an invalid config ID in the last window."},
	{ID: MetricConfigDeleteListSystemError, Name: "notifications_config.delete_list.system_error", Kind: KindRolling, Help: "Config delete list requests failed with a system error in the last window."},

	// GET _plugins/_notifications/configs/{config_id}
	{ID: MetricConfigInfoTotal, Name: "notifications_config.info.total", Kind: KindMonotonic, Help: "All config info requests since start."},
	{ID: MetricConfigInfoCount, Name: "notifications_config.info.count", Kind: KindRolling, Help: "Config info requests in the last window."},
	{ID: MetricConfigInfoUserErrorInvalidConfigID, Name: "notifications_config.info.user_error.invalid_config_id", Kind: KindRolling, Help: "Config info requests rejected for an invalid config ID in the last window."},
	{ID: MetricConfigInfoSystemError, Name: "notifications_config.info.system_error", Kind: KindRolling, Help: "Config info requests failed with a system error in the last window."},

	// GET _plugins/_notifications/configs
	{ID: MetricConfigListTotal, Name: "notifications_config.list.total", Kind: KindMonotonic, Help: "All config list requests since start."},
	{ID: MetricConfigListCount, Name: "notifications_config.list.count", Kind: KindRolling, Help: "Config list requests in the last window."},
	{ID: MetricConfigListUserErrorInvalidFromIndex, Name: "notifications_config.list.user_error.invalid_from_index", Kind: KindRolling, Help: "Config list requests rejected for an invalid from index in the last window."},
	{ID: MetricConfigListSystemError, Name: "notifications_config.list.system_error", Kind: KindRolling, Help: "Config list requests failed with a system error in the last window."},

	// GET _plugins/_notifications/events/{event_id}
	{ID: MetricEventsInfoTotal, Name: "notifications_events.info.total", Kind: KindMonotonic, Help: "All event info requests since start."},
	{ID: MetricEventsInfoCount, Name: "notifications_events.info.count", Kind: KindRolling, Help: "Event info requests in the last window."},
	{ID: MetricEventsInfoUserErrorInvalidConfigID, Name: "notifications_events.info.user_error.invalid_config_id", Kind: KindRolling, Help: "Event info requests rejected for an invalid config ID in the last window."},
	{ID: MetricEventsInfoSystemError, Name: "notifications_events.info.system_error", Kind: KindRolling, Help: "Event info requests failed with a system error in the last window."},

	// GET _plugins/_notifications/events
	{ID: MetricEventsListTotal, Name: "notifications_events.list.total", Kind: KindMonotonic, Help: "All event list requests since start."},
	{ID: MetricEventsListCount, Name: "notifications_events.list.count", Kind: KindRolling, Help: "Event list requests in the last window."},
	{ID: MetricEventsListUserErrorInvalidConfigID, Name: "notifications_events.list.user_error.invalid_config_id", Kind: KindRolling, Help: "Event list requests rejected for an invalid config ID in the last window."},
	{ID: MetricEventsListUserErrorInvalidFromIndex, Name: "notifications_events.list.user_error.invalid_from_index", Kind: KindRolling, Help: "Event list requests rejected for an invalid from index in the last window."},
	{ID: MetricEventsListSystemError, Name: "notifications_events.list.system_error", Kind: KindRolling, Help: "Event list requests failed with a system error in the last window."},

	// GET _plugins/_notifications/feature/channels/{feature_tag}
	{ID: MetricFeatureChannelsInfoTotal, Name: "notifications_feature_channels.info.total", Kind: KindMonotonic, Help: "All feature channel info requests since start."},
	{ID: MetricFeatureChannelsInfoCount, Name: "notifications_feature_channels.info.count", Kind: KindRolling, Help: "Feature channel info requests in the last window."},
	{ID: MetricFeatureChannelsInfoUserErrorInvalidFeatureTag, Name: "notifications_feature_channels.info.user_error.invalid_feature_tag", Kind: KindRolling, Help: "Feature channel info requests rejected for an invalid feature tag in the last window."},
	{ID: MetricFeatureChannelsInfoUserErrorInvalidFromIndex, Name: "notifications_feature_channels.info.user_error.invalid_from_index", Kind: KindRolling, Help: "Feature channel info requests rejected for an invalid from index in the last window."},
	{ID: MetricFeatureChannelsInfoSystemError, Name: "notifications_feature_channels.info.system_error", Kind: KindRolling, Help: "Feature channel info requests failed with a system error in the last window."},

	// GET _plugins/_notifications/features
	{ID: MetricFeaturesInfoTotal, Name: "notifications_features.info.total", Kind: KindMonotonic, Help: "All features info requests since start."},
	{ID: MetricFeaturesInfoCount, Name: "notifications_features.info.count", Kind: KindRolling, Help: "Features info requests in the last window."},
	{ID: MetricFeaturesInfoUserErrorInvalidFromIndex, Name: "notifications_features.info.user_error.invalid_from_index", Kind: KindRolling, Help: "Features info requests rejected for an invalid from index in the last window."},
	{ID: MetricFeaturesInfoSystemError, Name: "notifications_features.info.system_error", Kind: KindRolling, Help: "Features info requests failed with a system error in the last window."},

	// POST _plugins/_notifications/send
	{ID: MetricSendMessageTotal, Name: "notifications.send_message.total", Kind: KindMonotonic, Help: "All send message requests since start."},
	{ID: MetricSendMessageCount, Name: "notifications.send_message.count", Kind: KindRolling, Help: "Send message requests in the last window."},
	{ID: MetricSendMessageUserErrorNotFound, Name: "notifications.send_message.user_error.not_found", Kind: KindRolling, Help: "Send message requests rejected because the config was not found in the last window."},
	{ID: MetricSendMessageSystemError, Name: "notifications.send_message.system_error", Kind: KindRolling, Help: "Send message requests failed with a system error in the last window."},

	// Messages delivered per destination type.
	{ID: MetricMessageDestinationSlack, Name: "notifications.message_destination.slack", Kind: KindMonotonic, Help: "Messages sent to slack destinations since start."},
	{ID: MetricMessageDestinationChime, Name: "notifications.message_destination.chime", Kind: KindMonotonic, Help: "Messages sent to chime destinations since start."},
	{ID: MetricMessageDestinationWebhook, Name: "notifications.message_destination.webhook", Kind: KindMonotonic, Help: "Messages sent to webhook destinations since start."},
	{ID: MetricMessageDestinationEmail, Name: "notifications.message_destination.email", Kind: KindMonotonic, Help: "Messages sent to email destinations since start."},
	{ID: MetricMessageDestinationSESAccount, Name: "notifications.message_destination.ses_account", Kind: KindMonotonic, Help: "Messages sent to SES account destinations since start."},
	{ID: MetricMessageDestinationSMTPAccount, Name: "notifications.message_destination.smtp_account", Kind: KindMonotonic, Help: "Messages sent to SMTP account destinations since start."},
	{ID: MetricMessageDestinationEmailGroup, Name: "notifications.message_destination.email_group", Kind: KindMonotonic, Help: "Messages sent to email group destinations since start."},
	{ID: MetricMessageDestinationSNS, Name: "notifications.message_destination.sns", Kind: KindMonotonic, Help: "Messages sent to SNS destinations since start."},

	// GET _plugins/_notifications/feature/test/{config_id}
	{ID: MetricSendTestMessageTotal, Name: "notifications.send_test_message.total", Kind: KindMonotonic, Help: "All send test message requests since start."},
	{ID: MetricSendTestMessageCount, Name: "notifications.send_test_message.interval_count", Kind: KindRolling, Help: "Send test message requests in the last window."},

	// Authorization failures.
	{ID: MetricSecurityUserError, Name: "security_user_error", Kind: KindRolling, Help: "Requests rejected by authentication in the last window."},
	{ID: MetricPermissionUserError, Name: "permissions_user_error", Kind: KindRolling, Help: "Requests rejected by authorization in the last window."},
}

// Catalog returns a copy of the built-in metric table in snapshot order.
func Catalog() []MetricDef {
	out := make([]MetricDef, len(defaultDefs))
	copy(out, defaultDefs[:])
	return out
}

// ValidateCatalog checks that defs can back a registry and be rendered as
// nested JSON without losing values.
//
// It rejects empty names and empty segments, duplicate names or IDs, and any
// name that is a dot-prefix of another name ("a.b" next to "a.b.c"), since
// the shorter name would have to be both a value and an object.
func ValidateCatalog(defs []MetricDef) error {
	names := make(map[string]struct{}, len(defs))
	ids := make(map[MetricID]string, len(defs))

	for _, def := range defs {
		if err := validateName(def.Name); err != nil {
			return err
		}
		if def.Kind != KindMonotonic && def.Kind != KindRolling {
			return fmt.Errorf("%w: %q has unknown kind %d", ErrInvalidMetricName, def.Name, def.Kind)
		}
		if _, dup := names[def.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateMetric, def.Name)
		}
		if prev, dup := ids[def.ID]; dup {
			return fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateMetricID, def.ID, prev, def.Name)
		}
		names[def.Name] = struct{}{}
		ids[def.ID] = def.Name
	}

	for name := range names {
		for i := 0; i < len(name); i++ {
			if name[i] != NameDelimiter[0] {
				continue
			}
			if _, clash := names[name[:i]]; clash {
				return fmt.Errorf("%w: %q is a prefix of %q", ErrNameCollision, name[:i], name)
			}
		}
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMetricName)
	}
	for _, seg := range strings.Split(name, NameDelimiter) {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidMetricName, name)
		}
	}
	return nil
}
