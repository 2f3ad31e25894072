package notification

import "slices"

// Type は通知の種別を表す。
type Type string

const (
	// TypeMeeting は会議の通知。
	TypeMeeting Type = "meeting"
	// TypeActivity は社内イベントの通知。
	TypeActivity Type = "activity"
	// TypeDepartment は部門単位の通知。
	TypeDepartment Type = "department"
	// TypeAnnouncement は全社向けのお知らせ。
	TypeAnnouncement Type = "announcement"
)

// Valid は定義済みの通知種別であればtrueを返す。
func (t Type) Valid() bool {
	switch t {
	case TypeMeeting, TypeActivity, TypeDepartment, TypeAnnouncement:
		return true
	}
	return false
}

// TagKind はタグの分類を表す。
type TagKind string

const (
	// TagKindScope は通知の対象範囲（全社、部門など）。
	TagKindScope TagKind = "scope"
	// TagKindPriority は優先度。
	TagKindPriority TagKind = "priority"
	// TagKindCategory はカテゴリ。
	TagKindCategory TagKind = "category"
)

// TagNameImportant は重要な通知に付与する優先度タグの表示名。
const TagNameImportant = "重要"

// 日付グループのラベル。これ以外はYYYY-MM-DD形式の日付がそのまま入る。
const (
	DateGroupToday     = "Today"
	DateGroupYesterday = "Yesterday"
)

// Tag は通知に付与される表示用タグ。
type Tag struct {
	// Name はタグの表示名。
	Name string `json:"name"`
	// Kind はタグの分類。
	Kind TagKind `json:"kind"`
}

// Action はユーザーが通知に対して実行できる操作の表示情報。
type Action struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Kind  string `json:"kind"`
}

// Attachment は通知の添付ファイルの表示情報。
type Attachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Kind string `json:"kind"`
}

// Record は1件の通知を表す。
type Record struct {
	// ID は通知の一意識別子。生成時にStoreが採番し、以後変わらない。
	ID ID `json:"id"`
	// DateGroup は一覧の見出しに使う日付ラベル（Today, Yesterday, YYYY-MM-DD）。
	DateGroup string `json:"date_group"`
	// Title は通知のタイトル。
	Title string `json:"title"`
	// Time は表示用の時刻文字列。
	Time string `json:"time"`
	// Summary は一覧表示用の要約。
	Summary string `json:"summary"`
	// Content は通知本文。制限されたHTMLサブセットを含むことがある。
	Content string `json:"content"`
	// Type は通知の種別。
	Type Type `json:"type"`
	// IsNew は今回のセッションで作成され、まだ一度も既読になっていないことを表す。
	IsNew bool `json:"is_new"`
	// IsRead は通知の既読状態。
	IsRead bool `json:"is_read"`
	// Tags は表示用タグ。
	Tags []Tag `json:"tags"`
	// Actions は実行可能な操作。
	Actions []Action `json:"actions"`
	// Attachments は添付ファイル。
	Attachments []Attachment `json:"attachments"`
}

// clone はスライスを含めて複製したRecordを返す。
// Storeの外にレコードを渡すときは必ず複製を渡す。
func (r Record) clone() Record {
	r.Tags = cloneOrEmpty(r.Tags)
	r.Actions = cloneOrEmpty(r.Actions)
	r.Attachments = cloneOrEmpty(r.Attachments)
	return r
}

// cloneOrEmpty はスライスを複製する。nilの場合はJSONで[]になるよう空スライスを返す。
func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// important は優先度タグ「重要」が付与されているかを判定する。
func (r Record) important() bool {
	return slices.ContainsFunc(r.Tags, func(t Tag) bool {
		return t.Kind == TagKindPriority && t.Name == TagNameImportant
	})
}

// markRead は既読状態に遷移させる。既に既読ならfalseを返す。
func (r *Record) markRead() bool {
	if r.IsRead {
		return false
	}
	r.IsRead = true
	r.IsNew = false
	return true
}

// Draft は通知を追加するときに呼び出し側が指定できる項目。
// ID、日付グループ、時刻、新着・既読状態はStoreが決定するため含まない。
type Draft struct {
	Title       string
	Summary     string
	Content     string
	Type        Type
	Tags        []Tag
	Actions     []Action
	Attachments []Attachment
}
