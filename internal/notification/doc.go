// Package notification は社内通知サービスの内部実装を提供する。
//
// 通知レコードの集合をプロセス内メモリで保持するStoreと、それをHTTP APIとして
// 公開するServerから成る。Storeが唯一の状態の持ち主であり、既読管理・追加・削除・
// 一覧取得（フィルタとページング）はすべてStoreを経由する。
// 永続化は行わず、状態はプロセスの終了とともに破棄される。
package notification
