package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/enum/pet/pet_filter_enum"
)

// Trans 参数错误的翻译器，HandleParamError 使用
var Trans ut.Translator

// 自定义校验 tag
// 带参数 any 时额外放行搜索条件里的 "Any"，如 `binding:"omitempty,yesno=any"`
const (
	tagYesNo      = "yesno"       // good_with_kids: yes/no/true/false，不区分大小写
	tagDaysBucket = "days_bucket" // days_on_platform: 1-7 / 8-30 / 31-90 / 91+
)

// customMessages 自定义 tag 的提示文案，{0} 为字段名
var customMessages = map[string]map[string]string{
	"en": {
		tagYesNo:      "{0} must be yes or no",
		tagDaysBucket: "{0} must be one of 1-7, 8-30, 31-90, 91+",
	},
	"zh": {
		tagYesNo:      "{0}只能是yes或no",
		tagDaysBucket: "{0}只能是1-7、8-30、31-90、91+之一",
	},
}

// InitTrans 替换 gin 的校验引擎配置并加载 locale 对应的翻译
// locale 支持 "en" 与 "zh"，其他值按英文处理
func InitTrans(locale string) (err error) {
	// gin v1.9+ 中 binding.Validator 可能为 nil
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// 报错字段名取 json tag；宠物表单与搜索参数只有 form tag
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	if err = v.RegisterValidation(tagYesNo, allowAny(func(s string) bool {
		_, ok := pet_filter_enum.ParseYesNo(s)
		return ok
	})); err != nil {
		return err
	}
	if err = v.RegisterValidation(tagDaysBucket, allowAny(pet_filter_enum.IsDaysBucket)); err != nil {
		return err
	}

	// 英文兜底
	enT := en.New()
	uni := ut.New(enT, zh.New(), enT)
	Trans, ok = uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
	}

	messages := customMessages["en"]
	switch locale {
	case "zh":
		err = zh_translations.RegisterDefaultTranslations(v, Trans)
		messages = customMessages["zh"]
	default:
		err = en_translations.RegisterDefaultTranslations(v, Trans)
	}
	if err != nil {
		return err
	}
	for tag, msg := range messages {
		if err = registerMessage(v, tag, msg); err != nil {
			return err
		}
	}
	return nil
}

// allowAny 字符串字段的校验函数，tag 参数为 any 时 "Any" 也算合法
func allowAny(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if fl.Param() == "any" && strings.EqualFold(strings.TrimSpace(s), constants.ANY) {
			return true
		}
		return valid(s)
	}
}

func registerMessage(v *validator.Validate, tag, msg string) error {
	return v.RegisterTranslation(tag, Trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
}

// RemoveTopStruct 去掉翻译结果键上的结构体前缀
// 如 "CreatePetRequest.good_with_kids" -> "good_with_kids"
func RemoveTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string)
	for field, err := range fields {
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// defaultValidator binding.Validator 为空时的兜底实现
type defaultValidator struct {
	validator *validator.Validate
}

func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Struct(obj)
}

func (v *defaultValidator) Engine() interface{} {
	return v.validator
}
