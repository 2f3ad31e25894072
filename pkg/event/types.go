// Package event は通知ストアの更新を記録するアクティビティイベントの型を定義する。
package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeNotification は1件の通知を表す。
	AggregateTypeNotification AggregateType = "Notification"
	// AggregateTypeNotificationSet は通知集合全体を表す。一括既読などで使う。
	AggregateTypeNotificationSet AggregateType = "NotificationSet"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeNotificationCreated は通知が追加されたことを表す。
	TypeNotificationCreated Type = "NotificationCreated"
	// TypeNotificationRead は通知が未読から既読に変わったことを表す。
	TypeNotificationRead Type = "NotificationRead"
	// TypeAllNotificationsRead はすべての通知が既読になったことを表す。
	TypeAllNotificationsRead Type = "AllNotificationsRead"
	// TypeNotificationDeleted は通知が削除されたことを表す。
	TypeNotificationDeleted Type = "NotificationDeleted"
)

// Valid は定義済みのイベント種別であればtrueを返す。
func (t Type) Valid() bool {
	switch t {
	case TypeNotificationCreated, TypeNotificationRead, TypeAllNotificationsRead, TypeNotificationDeleted:
		return true
	}
	return false
}

// Event はアクティビティログに追記される不変のイベントレコード。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子（例: "notification-13"）。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// Version はAggregate内でのイベントの順序番号。1から始まる。
	Version int64 `json:"version"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// NotificationCreatedData はNotificationCreatedイベントのデータ。
type NotificationCreatedData struct {
	// NotificationID は追加された通知のID。
	NotificationID int `json:"notification_id"`
	// Title は通知のタイトル。
	Title string `json:"title"`
	// NotificationType は通知の種別。
	NotificationType string `json:"notification_type"`
}

// NotificationReadData はNotificationReadイベントのデータ。
type NotificationReadData struct {
	// NotificationID は既読になった通知のID。
	NotificationID int `json:"notification_id"`
	// Batch は一括既読の一部として実行された場合にtrue。
	Batch bool `json:"batch"`
}

// AllNotificationsReadData はAllNotificationsReadイベントのデータ。
type AllNotificationsReadData struct {
	// Count は既読に変わった件数。
	Count int `json:"count"`
}

// NotificationDeletedData はNotificationDeletedイベントのデータ。
type NotificationDeletedData struct {
	// NotificationID は削除された通知のID。
	NotificationID int `json:"notification_id"`
	// WasUnread は削除時点で未読だった場合にtrue。
	WasUnread bool `json:"was_unread"`
}
