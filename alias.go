package querykit

import (
	"fmt"

	"github.com/biyonik/go-querykit/internal/validation"
)

// ResolveAlias, isteğe bağlı aliaslı bir girdinin kabul edilen biçimlerini normalize eder:
//
//   - AliasedValue olduğu gibi döner (boş olmayan alias doğrulandıktan sonra);
//   - tek girdili map[string]any ya da map[string]string (key, value) verir;
//   - diğer her şey ("", input) verir.
//
// Boş ya da çok girdili map'ler belirsizdir ve ErrInvalidArgument ile reddedilir; sayısal ya da
// hatalı aliaslar da öyle.
func ResolveAlias(input any) (AliasedValue, error) {
	switch x := input.(type) {
	case AliasedValue:
		if x.Alias == "" {
			return x, nil
		}
		if err := validateAlias(x.Alias); err != nil {
			return AliasedValue{}, err
		}
		return x, nil
	case map[string]any:
		if len(x) != 1 {
			return AliasedValue{}, invalidArgument("", "", fmt.Sprintf("alias mapping must have exactly one entry, got %d", len(x)))
		}
		for alias, value := range x {
			if err := validateAlias(alias); err != nil {
				return AliasedValue{}, err
			}
			return AliasedValue{Alias: alias, Value: value}, nil
		}
	case map[string]string:
		if len(x) != 1 {
			return AliasedValue{}, invalidArgument("", "", fmt.Sprintf("alias mapping must have exactly one entry, got %d", len(x)))
		}
		for alias, value := range x {
			if err := validateAlias(alias); err != nil {
				return AliasedValue{}, err
			}
			return AliasedValue{Alias: alias, Value: value}, nil
		}
	}
	return AliasedValue{Value: input}, nil
}

func validateAlias(alias string) error {
	if err := validation.ValidateAlias(alias); err != nil {
		return &ArgumentError{Arg: alias, Reason: "malformed alias", Err: err}
	}
	return nil
}
