package domain

import "strings"

// Status is the raw order lifecycle state as stored by the order store.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusContacted  Status = "CONTACTED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusReceived   Status = "RECEIVED"
	StatusCancelled  Status = "CANCELLED"
)

// DisplayStatus is the simplified four-value status shown in list views.
type DisplayStatus string

const (
	DisplayPending    DisplayStatus = "pending"
	DisplayProcessing DisplayStatus = "processing"
	DisplayCompleted  DisplayStatus = "completed"
	DisplayCancelled  DisplayStatus = "cancelled"
)

// ServiceType enumerates the notary translation service catalog.
type ServiceType string

const (
	ServiceIDCard         ServiceType = "ID_CARD"
	ServiceBirthMarriage  ServiceType = "BIRTH_MARRIAGE"
	ServiceEducation      ServiceType = "EDUCATION"
	ServiceCriminalRecord ServiceType = "CRIMINAL_RECORD"
	ServiceOther          ServiceType = "OTHER"

	// ServiceVisa is the pseudo service type visa orders report under.
	ServiceVisa ServiceType = "VISA"
)

// MapStatusToDisplay collapses the raw status vocabulary to the four
// display values. Unrecognized raw values pass through lower-cased.
func MapStatusToDisplay(s Status) DisplayStatus {
	switch s {
	case StatusPending:
		return DisplayPending
	case StatusContacted, StatusConfirmed, StatusInProgress:
		return DisplayProcessing
	case StatusCompleted, StatusReceived:
		return DisplayCompleted
	case StatusCancelled:
		return DisplayCancelled
	}
	return DisplayStatus(strings.ToLower(string(s)))
}

// IsCompletedEquivalent reports whether a raw status counts toward
// revenue (COMPLETED or RECEIVED).
func IsCompletedEquivalent(s Status) bool {
	return s == StatusCompleted || s == StatusReceived
}

var serviceTypeLabels = map[ServiceType]string{
	ServiceIDCard:         "身份证/护照",
	ServiceBirthMarriage:  "出生证/结婚证",
	ServiceEducation:      "成绩单/毕业证",
	ServiceCriminalRecord: "无犯罪证明",
	ServiceOther:          "其他",
	ServiceVisa:           "签证邀请函",
}

// ServiceTypeLabel resolves the display label for a service type. For
// OTHER the customer-supplied custom type wins when present.
func ServiceTypeLabel(t ServiceType, customFileType string) string {
	if t == ServiceOther && strings.TrimSpace(customFileType) != "" {
		return customFileType
	}
	if label, ok := serviceTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

var statusLabels = map[Status]string{
	StatusPending:    "订单上传成功",
	StatusContacted:  "等待联系",
	StatusConfirmed:  "已确认",
	StatusInProgress: "正在处理",
	StatusCompleted:  "已做完",
	StatusReceived:   "已收货",
	StatusCancelled:  "已取消",
}

// StatusLabel returns the localized label for a raw status.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var displayStatusLabels = map[DisplayStatus]string{
	DisplayPending:    "订单上传成功",
	DisplayProcessing: "处理中",
	DisplayCompleted:  "已完成",
	DisplayCancelled:  "已取消",
}

// DisplayStatusLabel returns the localized list-view label.
func DisplayStatusLabel(s DisplayStatus) string {
	if label, ok := displayStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// OrderKind is the tagged union of the two order families. Each kind
// carries its own table, status vocabulary and normalization rules.
type OrderKind string

const (
	KindTranslation OrderKind = "translation"
	KindVisa        OrderKind = "visa"
)

// Table names the store's backing table for the kind.
func (k OrderKind) Table() string {
	if k == KindVisa {
		return "visa_orders"
	}
	return "notary_translation_orders"
}

// AllowedStatuses lists the raw statuses an order of this kind may
// transition to. The visa vocabulary is a strict subset.
func (k OrderKind) AllowedStatuses() []Status {
	if k == KindVisa {
		return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
	}
	return []Status{
		StatusPending, StatusContacted, StatusConfirmed,
		StatusInProgress, StatusCompleted, StatusReceived, StatusCancelled,
	}
}

// StatusOption pairs a raw status with the label the detail editor
// shows for it. Translation and visa orders use different wording.
type StatusOption struct {
	Value Status `json:"value"`
	Label string `json:"label"`
}

var translationStatusOptions = map[Status]string{
	StatusPending:    "订单上传成功",
	StatusContacted:  "等待报价及公证处联系",
	StatusConfirmed:  "已确认订单",
	StatusInProgress: "正在做",
	StatusCompleted:  "已做完",
	StatusReceived:   "已收货",
	StatusCancelled:  "已取消",
}

var visaStatusOptions = map[Status]string{
	StatusPending:    "待处理",
	StatusInProgress: "办理中",
	StatusCompleted:  "已完成",
	StatusCancelled:  "已取消",
}

// StatusOptions returns the editable status vocabulary for the kind,
// in lifecycle order, with detail-view labels.
func (k OrderKind) StatusOptions() []StatusOption {
	labels := translationStatusOptions
	if k == KindVisa {
		labels = visaStatusOptions
	}
	out := make([]StatusOption, 0, len(labels))
	for _, s := range k.AllowedStatuses() {
		out = append(out, StatusOption{Value: s, Label: labels[s]})
	}
	return out
}

// NormalizeStatus validates a requested transition. Visa orders first
// coerce the translation-only intermediate statuses down to
// IN_PROGRESS, then anything outside the visa vocabulary is rejected.
func (k OrderKind) NormalizeStatus(s Status) (Status, error) {
	if k == KindVisa {
		switch s {
		case StatusContacted, StatusConfirmed, StatusReceived:
			s = StatusInProgress
		}
	}
	for _, allowed := range k.AllowedStatuses() {
		if s == allowed {
			return s, nil
		}
	}
	if k == KindVisa {
		return "", ValidationError{Field: "status", Msg: "签证订单仅支持：待处理 / 办理中 / 已完成 / 已取消"}
	}
	return "", ValidationError{Field: "status", Msg: "unknown order status " + string(s)}
}
