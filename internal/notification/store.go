package notification

import (
	"slices"
	"sync"
	"time"
)

// DefaultPageSize はページサイズが指定されなかった場合の件数。
const DefaultPageSize = 10

// Filter は一覧取得時の絞り込み条件。
// "all"、"unread"、または通知種別のいずれか。それ以外の値はどのレコードにも一致しない。
type Filter string

const (
	// FilterAll はすべての通知を返す。
	FilterAll Filter = "all"
	// FilterUnread は未読の通知のみを返す。
	FilterUnread Filter = "unread"
)

// match はレコードが条件に一致するかを判定する。
func (f Filter) match(r Record) bool {
	switch f {
	case FilterAll:
		return true
	case FilterUnread:
		return !r.IsRead
	default:
		return Type(f).Valid() && r.Type == Type(f)
	}
}

// Page は一覧取得の結果。
type Page struct {
	// Items は該当ページのレコード。範囲外のページでは空になる。
	Items []Record `json:"items"`
	// Total はフィルタ適用後の総件数。
	Total int `json:"total"`
	// Page は1始まりのページ番号。
	Page int `json:"page"`
	// PageSize は1ページあたりの件数。
	PageSize int `json:"page_size"`
	// TotalPages は総ページ数。
	TotalPages int `json:"total_pages"`
	// HasMore は次のページが存在するかを表す。
	HasMore bool `json:"has_more"`
}

// Store は通知レコードの集合を保持するインメモリストア。
//
// レコードの順序は表示順で、新しく追加したものが先頭に来る。
// unreadは常に未読レコード数と一致する。すべての更新はcommitを通して行う。
type Store struct {
	mu sync.RWMutex
	// records は表示順に並んだ通知レコード。
	records []Record
	// unread は未読レコード数。
	unread int
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// StoreOption はStoreの生成オプション。
type StoreOption func(*Store)

// WithClock は追加時の時刻に使う時計を差し替える。
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore は初期レコードを持つStoreを生成する。
// 初期レコードは複製して保持するため、呼び出し側のスライスを変更しても影響しない。
// 既読のレコードは新着ではないものとして取り込む。
func NewStore(seed []Record, opts ...StoreOption) *Store {
	s := &Store{
		records: make([]Record, 0, len(seed)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, r := range seed {
		r = r.clone()
		if r.IsRead {
			r.IsNew = false
		}
		s.records = append(s.records, r)
	}
	s.commit()
	return s
}

// commit は更新後に未読数をレコード集合から導出し直す。
// ロックを保持した状態で呼び出すこと。
func (s *Store) commit() {
	n := 0
	for i := range s.records {
		if !s.records[i].IsRead {
			n++
		}
	}
	s.unread = n
}

// indexOf はIDに一致するレコードの位置を返す。見つからない場合は-1。
func (s *Store) indexOf(id ID) int {
	if id <= 0 {
		return -1
	}
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}

// List はフィルタを適用した上でページ単位にレコードを返す。
// pageが1未満の場合は1、pageSizeが1未満の場合はDefaultPageSizeとして扱う。
func (s *Store) List(filter Filter, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]int, 0, len(s.records))
	for i := range s.records {
		if filter.match(s.records[i]) {
			filtered = append(filtered, i)
		}
	}

	total := len(filtered)
	totalPages := totalPagesOf(total, pageSize)

	items := []Record{}
	// page <= totalPagesのときに限り (page-1)*pageSize < total が成り立ち、乗算が溢れない。
	if page <= totalPages {
		start := (page - 1) * pageSize
		end := start + min(pageSize, total-start)
		for _, i := range filtered[start:end] {
			items = append(items, s.records[i].clone())
		}
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// totalPagesOf はtotal件をpageSize件ずつに分けたときのページ数を返す。
// total+pageSize-1 は大きなpageSizeで溢れるため、商と剰余から求める。
func totalPagesOf(total, pageSize int) int {
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// Important は優先度タグ「重要」が付いた通知を表示順に返す。
// ページングは行わず、該当が無い場合は空のスライスを返す。
func (s *Store) Important() []Record {
	return s.collect(Record.important)
}

// New は新着の通知を表示順に返す。新着は未読とは別の状態で、MarkAllAsReadでも解除される。
func (s *Store) New() []Record {
	return s.collect(func(r Record) bool { return r.IsNew })
}

// collect はmatchに一致するレコードの複製を表示順に返す。
func (s *Store) collect(match func(Record) bool) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []Record{}
	for i := range s.records {
		if match(s.records[i]) {
			items = append(items, s.records[i].clone())
		}
	}
	return items
}

// Get はIDに一致するレコードの複製を返す。見つからない場合はfalse。
func (s *Store) Get(id ID) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i].clone(), true
}

// Lookup は文字列のIDを正規化してからGetする。
func (s *Store) Lookup(raw string) (Record, bool) {
	id, ok := ParseID(raw)
	if !ok {
		return Record{}, false
	}
	return s.Get(id)
}

// MarkAsRead は通知を既読にする。
// 存在しないIDや既読の通知に対しては何もしない。既読に遷移した場合のみtrueを返す。
func (s *Store) MarkAsRead(id ID) bool {
	_, transitioned := s.MarkAsReadStatus(id)
	return transitioned
}

// MarkAsReadStatus は通知を既読にし、通知が存在したかと既読に遷移したかを返す。
// 存在確認と既読化は同じロックの中で行う。
func (s *Store) MarkAsReadStatus(id ID) (found, transitioned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, transitioned = s.markRead(id)
	s.commit()
	return found, transitioned
}

// markRead はロック保持中に1件を既読にする。
func (s *Store) markRead(id ID) (found, changed bool) {
	i := s.indexOf(id)
	if i < 0 {
		return false, false
	}
	return true, s.records[i].markRead()
}

// MarkMultipleAsRead は複数の通知を既読にし、実際に未読から既読へ遷移した件数を返す。
func (s *Store) MarkMultipleAsRead(ids []ID) int {
	return len(s.MarkMultipleAsReadIDs(ids))
}

// MarkMultipleAsReadIDs は複数の通知を既読にし、未読から既読へ遷移したIDを処理順に返す。
func (s *Store) MarkMultipleAsReadIDs(ids []ID) []ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := []ID{}
	for _, id := range ids {
		if _, ok := s.markRead(id); ok {
			changed = append(changed, id)
		}
	}
	s.commit()
	return changed
}

// MarkAllAsRead はすべての通知を既読にし、未読だった件数を返す。
func (s *Store) MarkAllAsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.records {
		if s.records[i].markRead() {
			count++
		}
		s.records[i].IsNew = false
	}
	s.commit()
	return count
}

// Add は新しい通知を先頭に追加し、採番済みのレコードを返す。
//
// IDは既存の最大ID+1（空なら1）。日付グループはToday、時刻は現在時刻のHH:MM、
// 新着かつ未読の状態で作成される。
func (s *Store) Add(d Draft) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID ID
	for i := range s.records {
		maxID = max(maxID, s.records[i].ID)
	}

	r := Record{
		ID:          maxID + 1,
		DateGroup:   DateGroupToday,
		Title:       d.Title,
		Time:        s.now().Format("15:04"),
		Summary:     d.Summary,
		Content:     d.Content,
		Type:        d.Type,
		IsNew:       true,
		IsRead:      false,
		Tags:        d.Tags,
		Actions:     d.Actions,
		Attachments: d.Attachments,
	}.clone()

	s.records = slices.Insert(s.records, 0, r)
	s.commit()
	return r.clone()
}

// Delete はIDに一致する通知を削除する。存在しない場合はfalseを返す。
func (s *Store) Delete(id ID) bool {
	_, ok := s.Remove(id)
	return ok
}

// Remove はIDに一致する通知を削除し、削除したレコードを返す。存在しない場合はfalse。
func (s *Store) Remove(id ID) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.remove(id)
	s.commit()
	return r, ok
}

// remove はロック保持中に1件を削除する。
func (s *Store) remove(id ID) (Record, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Record{}, false
	}
	r := s.records[i]
	s.records = slices.Delete(s.records, i, i+1)
	return r, true
}

// DeleteMultiple は複数の通知を削除し、実際に削除した件数を返す。
func (s *Store) DeleteMultiple(ids []ID) int {
	return len(s.RemoveMultiple(ids))
}

// RemoveMultiple は複数の通知を削除し、削除したレコードを処理順に返す。
func (s *Store) RemoveMultiple(ids []ID) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := []Record{}
	for _, id := range ids {
		if r, ok := s.remove(id); ok {
			removed = append(removed, r)
		}
	}
	s.commit()
	return removed
}

// UnreadCount は未読の通知数を返す。
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

// Total は通知の総数を返す。
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
