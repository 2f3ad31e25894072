package notification

import "time"

// DateGroupFor は日付から一覧見出しのラベルを決定する。
// nowと同じ日ならToday、前日ならYesterday、それ以外はYYYY-MM-DD形式の日付を返す。
func DateGroupFor(day, now time.Time) string {
	d := truncateDay(day)
	today := truncateDay(now)
	switch {
	case d.Equal(today):
		return DateGroupToday
	case d.Equal(today.AddDate(0, 0, -1)):
		return DateGroupYesterday
	default:
		return d.Format(time.DateOnly)
	}
}

// truncateDay はnowのロケーションにおける日付の0時を返す。
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// 初期データで使う共通の操作ボタン。
var (
	actionView    = Action{Label: "詳細を見る", Icon: "fa-arrow-right", Kind: "view"}
	actionConfirm = Action{Label: "参加を確認", Icon: "fa-check", Kind: "confirm"}
	actionJoin    = Action{Label: "参加する", Icon: "fa-user-plus", Kind: "join"}
)

// 初期データで使う共通のタグ。
var (
	tagCompany   = Tag{Name: "全社", Kind: TagKindScope}
	tagImportant = Tag{Name: TagNameImportant, Kind: TagKindPriority}
)

// SeedRecords はアプリケーション起動時に読み込む12件の初期通知を返す。
//
// 直近の通知の日付ラベルはnowを基準に決まる。呼び出すたびに新しいスライスを返す。
func SeedRecords(now time.Time) []Record {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	dateLabel := func(n int) string { return daysAgo(n).Format(time.DateOnly) }
	shortDate := func(n int) string { return daysAgo(n).Format("01-02") }

	return []Record{
		{
			ID:        1,
			DateGroup: DateGroupFor(now, now),
			Title:     "2024年第2四半期 業務計画会議のお知らせ",
			Time:      "10:24",
			Summary:   "今週金曜日15時より2024年第2四半期の業務計画会議を開催します。各部門の責任者は必ずご出席ください。会場は本社ビル3階会議室です。",
			Content: `<p>各部門責任者各位</p>
<p>今週金曜日（2024年6月28日）15時より、本社ビル3階会議室にて2024年第2四半期業務計画会議を開催します。</p>
<p><strong>議題：</strong></p>
<ol>
<li>各部門の第1四半期総括と第2四半期計画</li>
<li>新製品ラインの立ち上げ計画</li>
<li>上期人事評価制度の検討</li>
<li>創立6周年記念行事について</li>
</ol>
<p>やむを得ず欠席される場合は、事前に連絡のうえ代理の方を指名してください。</p>
<p>総務部</p>`,
			Type:    TypeMeeting,
			IsNew:   true,
			IsRead:  false,
			Tags:    []Tag{tagCompany, tagImportant},
			Actions: []Action{actionConfirm, actionView},
			Attachments: []Attachment{
				{Name: "会議議題.docx", Size: "156KB", Kind: "document"},
				{Name: "第1四半期総括テンプレート.xlsx", Size: "78KB", Kind: "spreadsheet"},
			},
		},
		{
			ID:        2,
			DateGroup: DateGroupFor(now, now),
			Title:     "創立6周年記念式典のご案内",
			Time:      "08:56",
			Summary:   "今月25日に創立6周年記念式典を開催します。当日のスケジュールをお知らせしますので、各部門でのご協力をお願いします。",
			Content: `<p>社員の皆さま</p>
<p>創立6周年を記念して、以下のとおり式典を開催します。</p>
<p><strong>日時：</strong>2024年6月25日 14:00〜20:00</p>
<p><strong>会場：</strong>サンシャインホテル 宴会場</p>
<ol>
<li>14:00〜14:30 受付</li>
<li>14:30〜15:30 創業者挨拶と沿革紹介</li>
<li>15:30〜16:30 優秀社員表彰</li>
<li>16:30〜17:30 チーム対抗ゲーム</li>
<li>17:30〜20:00 懇親会</li>
</ol>
<p>参加者名簿は6月23日までに総務部へ提出してください。</p>
<p>総務部</p>`,
			Type:    TypeActivity,
			IsNew:   true,
			IsRead:  false,
			Tags:    []Tag{tagCompany, {Name: "イベント", Kind: TagKindCategory}},
			Actions: []Action{actionJoin, actionView},
			Attachments: []Attachment{
				{Name: "式典進行表.pdf", Size: "2.3MB", Kind: "pdf"},
				{Name: "ホテル地図.png", Size: "1.5MB", Kind: "image"},
			},
		},
		{
			ID:        3,
			DateGroup: DateGroupFor(daysAgo(1), now),
			Title:     "技術部 新入社員研修のお知らせ",
			Time:      "昨日 15:30",
			Summary:   "技術部に最近入社した社員を対象に、今週水曜日に集合研修を行います。社内の技術アーキテクチャや開発フローなどの基礎を扱います。",
			Content: `<p>技術部 新入社員各位</p>
<p>今週水曜日（6月26日）に新入社員研修を実施します。</p>
<p><strong>時間：</strong>2024年6月26日 9:30〜17:00</p>
<p><strong>場所：</strong>技術棟2階 研修室</p>
<ol>
<li>社内技術アーキテクチャの紹介</li>
<li>開発フローと規約</li>
<li>バージョン管理とコミット規約</li>
<li>テストとリリースの流れ</li>
<li>技術ドキュメントの書き方</li>
</ol>
<p>実習があるため各自PCを持参してください。</p>
<p>技術部</p>`,
			Type:    TypeDepartment,
			IsRead:  true,
			Tags:    []Tag{{Name: "技術部", Kind: TagKindScope}},
			Actions: []Action{actionView},
			Attachments: []Attachment{
				{Name: "研修マニュアル.pdf", Size: "5.8MB", Kind: "pdf"},
			},
		},
		{
			ID:        4,
			DateGroup: DateGroupFor(daysAgo(1), now),
			Title:     "勤務時間変更のお知らせ",
			Time:      "昨日 09:15",
			Summary:   "仕事と生活のバランスを改善するため、来月から勤務時間を変更します。詳細は以下のとおりです。",
			Content: `<p>社員各位</p>
<p>2024年7月1日より、勤務時間を以下のとおり変更します。</p>
<ul>
<li>月曜〜木曜：9:00〜12:00、13:30〜18:00</li>
<li>金曜：9:00〜12:00、13:30〜17:00</li>
</ul>
<p><strong>フレックスタイム制：</strong>コアタイムは10:00〜16:00です。</p>
<p><strong>リモートワーク：</strong>週1日まで、事前に所属長の承認を得て申請できます。</p>
<p>人事部</p>`,
			Type:        TypeAnnouncement,
			IsRead:      true,
			Tags:        []Tag{tagCompany},
			Attachments: []Attachment{},
		},
		{
			ID:        5,
			DateGroup: dateLabel(3),
			Title:     "サーバーメンテナンスのお知らせ",
			Time:      shortDate(3) + " 18:00",
			Summary:   "サービス品質向上のため、今夜サーバーメンテナンスを実施します。約2時間、一部のシステムが利用できなくなります。",
			Content: `<p>社員各位</p>
<p>本日22:00から翌0:00まで、IT部門がサーバーメンテナンスを実施します。</p>
<ul>
<li>社内OAシステム（利用不可）</li>
<li>社内メール（一時的な遅延の可能性あり）</li>
<li>コードリポジトリ（読み取り専用）</li>
<li>顧客管理システム（利用不可）</li>
</ul>
<p>特別な事情がある場合は事前にIT部門へご連絡ください。</p>
<p>IT運用部</p>`,
			Type:        TypeAnnouncement,
			IsRead:      true,
			Tags:        []Tag{tagCompany, tagImportant},
			Attachments: []Attachment{},
		},
		{
			ID:        6,
			DateGroup: dateLabel(4),
			Title:     "マーケティング部 月例会議 議事録",
			Time:      shortDate(4) + " 11:00",
			Summary:   "第3四半期のプロモーション計画、新製品の発表スケジュール、競合分析レポートについて議論しました。議事録を共有します。",
			Content: `<p>マーケティング部各位</p>
<p>6月20日の月例会議の議事録を共有します。</p>
<ol>
<li><strong>第2四半期施策の効果分析</strong><br>オンライン施策のコンバージョン率は前年比15%向上、客単価はやや低下しました。</li>
<li><strong>新製品の発売計画</strong><br>「スマートオフィスアシスタントPro」は8月15日発売。7月初旬から告知を開始します。</li>
<li><strong>競合分析</strong><br>競合のAI機能強化を受け、開発部門にアシスタント機能の改善を依頼します。</li>
<li><strong>第3四半期の予算調整</strong><br>オンラインのコンテンツマーケティングに予算を重点配分します。</li>
</ol>
<ul>
<li>各チームは金曜日までに第3四半期の実行計画を提出</li>
<li>クリエイティブチームは月曜日までに発表会のビジュアル案を作成</li>
</ul>
<p>マーケティング部</p>`,
			Type:    TypeDepartment,
			IsRead:  false,
			Tags:    []Tag{{Name: "マーケティング部", Kind: TagKindScope}},
			Actions: []Action{actionView},
			Attachments: []Attachment{
				{Name: "第2四半期マーケティング報告.pptx", Size: "4.2MB", Kind: "presentation"},
				{Name: "競合分析.pdf", Size: "2.1MB", Kind: "pdf"},
				{Name: "第3四半期予算案.xlsx", Size: "1.8MB", Kind: "spreadsheet"},
			},
		},
		{
			ID:        7,
			DateGroup: dateLabel(4),
			Title:     "定期健康診断の日程について",
			Time:      shortDate(4) + " 09:30",
			Summary:   "来月、年次の定期健康診断を実施します。部門ごとの受診日程に従い、指定の医療機関で受診してください。",
			Content: `<p>社員各位</p>
<p>2024年度の定期健康診断を以下のとおり実施します。</p>
<p><strong>期間：</strong>2024年7月10日〜7月20日</p>
<p><strong>場所：</strong>仁愛病院 健診センター</p>
<ul>
<li>前日20時以降は食事を控えてください</li>
<li>当日は身分証明書を持参してください</li>
<li>所要時間は約2時間です</li>
</ul>
<p>7月10〜11日：総務部・人事部・経理部<br>7月12〜13日：技術部<br>7月15〜16日：製品部・デザイン部<br>7月17〜18日：マーケティング部・営業部<br>7月19〜20日：その他の部門と追加受診</p>
<p>人事部</p>`,
			Type:   TypeAnnouncement,
			IsRead: true,
			Tags:   []Tag{tagCompany},
			Attachments: []Attachment{
				{Name: "健診項目一覧.pdf", Size: "1.3MB", Kind: "pdf"},
				{Name: "病院アクセス.pdf", Size: "0.8MB", Kind: "pdf"},
			},
		},
		{
			ID:        8,
			DateGroup: dateLabel(6),
			Title:     "製品部 週次定例のお知らせ",
			Time:      shortDate(6) + " 14:15",
			Summary:   "今週の製品部定例は木曜日14時から3階会議室で行います。新機能の計画と最近のユーザーフィードバックについて議論します。",
			Content: `<p>製品部各位</p>
<p>今週木曜日（6月27日）14:00より3階会議室で定例会議を行います。</p>
<ol>
<li>イテレーション進捗の振り返り（15分）</li>
<li>ユーザーフィードバックの分析（20分）</li>
<li>新機能の設計議論（40分）</li>
<li>来週の作業計画（15分）</li>
</ol>
<p>欠席する場合は事前にご連絡ください。</p>
<p>製品部</p>`,
			Type:        TypeMeeting,
			IsRead:      true,
			Tags:        []Tag{{Name: "製品部", Kind: TagKindScope}},
			Actions:     []Action{actionConfirm, actionView},
			Attachments: []Attachment{},
		},
		{
			ID:        9,
			DateGroup: "2024-06-19",
			Title:     "人事システム更新のお知らせ",
			Time:      "06-19 16:40",
			Summary:   "今週末に人事システムを更新します。更新中はシステムを利用できないため、金曜日の終業までに承認作業を完了してください。",
			Content: `<p>社員各位</p>
<p><strong>停止期間：</strong>2024年6月28日18:00〜6月30日24:00</p>
<ul>
<li>社員セルフサービス（休暇申請・経費申請など）</li>
<li>勤怠システム</li>
<li>採用管理システム</li>
<li>研修管理システム</li>
</ul>
<p>停止期間中の緊急申請はhr@example.comまでメールでお送りください。</p>
<p>人事部</p>`,
			Type:   TypeAnnouncement,
			IsRead: false,
			Tags:   []Tag{tagCompany},
			Attachments: []Attachment{
				{Name: "新システム機能紹介.pdf", Size: "2.5MB", Kind: "pdf"},
			},
		},
		{
			ID:        10,
			DateGroup: "2024-06-18",
			Title:     "経費精算締切のリマインド",
			Time:      "06-18 11:20",
			Summary:   "今月の経費精算は6月25日で締め切ります。期限を過ぎた申請は翌月の処理となります。",
			Content: `<p>社員各位</p>
<ul>
<li>申請締切：6月25日17:00</li>
<li>経理審査：6月26日〜28日</li>
<li>支払日：6月30日まで</li>
</ul>
<ol>
<li>領収書の日付が当四半期内であることを確認してください</li>
<li>申請は所属長の承認後に提出してください</li>
<li>5000円を超える精算には詳細な説明が必要です</li>
</ol>
<p>経理部</p>`,
			Type:   TypeAnnouncement,
			IsRead: true,
			Tags:   []Tag{tagCompany},
			Attachments: []Attachment{
				{Name: "経費精算ガイド.pdf", Size: "1.1MB", Kind: "pdf"},
			},
		},
		{
			ID:        11,
			DateGroup: "2024-06-17",
			Title:     "開発部 技術共有会のお知らせ",
			Time:      "06-17 14:50",
			Summary:   "今週金曜日に「マイクロサービスアーキテクチャの実践」をテーマに技術共有会を開催します。興味のある方はぜひご参加ください。",
			Content: `<p>社員各位</p>
<p><strong>テーマ：</strong>マイクロサービスアーキテクチャの実践</p>
<p><strong>講師：</strong>アーキテクチャチーム 張</p>
<ol>
<li>マイクロサービスの基礎と動向</li>
<li>サービス分割の原則と事例</li>
<li>サービスガバナンスと監視</li>
<li>DevOpsの実践</li>
</ol>
<p><strong>日時：</strong>6月28日 15:30〜17:30<br><strong>場所：</strong>技術棟5階会議室（定員30名、オンライン配信あり）</p>
<p>開発部</p>`,
			Type:    TypeDepartment,
			IsRead:  false,
			Tags:    []Tag{{Name: "開発部", Kind: TagKindScope}, {Name: "研修", Kind: TagKindCategory}},
			Actions: []Action{actionJoin, actionView},
			Attachments: []Attachment{
				{Name: "技術共有会資料.pdf", Size: "5.7MB", Kind: "pdf"},
			},
		},
		{
			ID:        12,
			DateGroup: "2024-06-16",
			Title:     "社内昇格結果の公示",
			Time:      "06-16 16:30",
			Summary:   "第2四半期の社内昇格審査が完了しました。昇格者を公示します。公示期間は5営業日です。",
			Content: `<p>社員各位</p>
<p>2024年第2四半期の昇格者を公示します（公示期間：6月16日〜6月22日）。</p>
<ul>
<li>李明（マーケティング部） マーケティング部長</li>
<li>張華（開発部） 技術マネージャー</li>
<li>劉洋（開発部） シニアエンジニア</li>
</ul>
<p>昇格は7月1日付で発効します。異議のある方は人事部までお知らせください。</p>
<p>人事部</p>`,
			Type:   TypeAnnouncement,
			IsRead: true,
			Tags:   []Tag{tagCompany},
			Attachments: []Attachment{
				{Name: "昇格評価基準.pdf", Size: "1.8MB", Kind: "pdf"},
			},
		},
	}
}
