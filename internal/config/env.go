package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv overrides config values from the environment. Every section of
// AppConfig is walked; a field is overridden when one of the comma separated
// names in its `env` tag is set. The first name that is set wins.
func LoadEnv(config *AppConfig) error {
	applied, err := applyEnv(reflect.ValueOf(config).Elem())
	if err != nil {
		return err
	}

	log.Debug().
		Strs("variables", applied).
		Msg("Environment overrides applied")
	return nil
}

// processStructEnv applies the environment to a single tagged struct.
func processStructEnv(s interface{}) error {
	_, err := applyEnv(reflect.ValueOf(s).Elem())
	return err
}

// applyEnv sets tagged fields of val and descends into untagged struct
// fields. It returns the names of the variables it used. Secret values are
// never returned, only names.
func applyEnv(val reflect.Value) ([]string, error) {
	var applied []string
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("env")
		if tag == "" {
			if fieldVal.Kind() == reflect.Struct && field.Type != durationType {
				nested, err := applyEnv(fieldVal)
				if err != nil {
					return nil, err
				}
				applied = append(applied, nested...)
			}
			continue
		}

		name, value, ok := lookupEnv(tag)
		if !ok {
			continue
		}
		if err := setField(fieldVal, name, value); err != nil {
			return nil, err
		}
		applied = append(applied, name)
	}

	return applied, nil
}

// lookupEnv returns the first set variable among the names of tag.
func lookupEnv(tag string) (string, string, bool) {
	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if value, ok := os.LookupEnv(name); ok {
			return name, value, true
		}
	}
	return "", "", false
}

// setField parses value into the kind of field.
func setField(field reflect.Value, name, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration for %s: %w", name, err)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %w", name, err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer for %s: %w", name, err)
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %w", name, err)
		}
		field.SetBool(b)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", name, err)
		}
		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type for %s", name)
		}
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s for %s", field.Type(), name)
	}
	return nil
}
