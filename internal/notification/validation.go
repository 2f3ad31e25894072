package notification

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidations はGinのバリデータに通知用の独自ルールを登録する。
// 登録できない場合はリクエストの検証が成り立たないため、起動時にpanicする。
func registerValidations() {
	registerOnce.Do(func() {
		if err := registerValidationsOn(binding.Validator.Engine()); err != nil {
			panic(fmt.Sprintf("バリデーションルールの登録に失敗: %v", err))
		}
	})
}

// registerValidationsOn はengineに通知用の独自ルールを登録する。
// notification_type は定義済みの通知種別のみを許可する。
// エラーメッセージの項目名にはJSONのキーを使う。
func registerValidationsOn(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("未対応のバリデータエンジン: %T", engine)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("notification_typeの登録に失敗: %w", err)
	}
	return nil
}

// validationMessage はバインドエラーを利用者向けのメッセージに変換する。
// バリデーションエラーの場合は最初に失敗した項目を示す。
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("リクエストが不正です: %sが'%s'の検証に失敗しました", fe.Field(), fe.Tag())
	}
	return fmt.Sprintf("リクエストが不正です: %v", err)
}
