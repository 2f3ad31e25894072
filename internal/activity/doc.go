// Package activity は通知ストアに対する更新操作の記録（アクティビティログ）を提供する。
//
// 追加・既読・削除といった更新をイベントとしてSQLiteに追記する。
// 既定ではインメモリDBを使い、プロセス終了とともに破棄される。
// UIの動作確認のための参照用であり、通知の状態そのものはStoreが保持する。
package activity
