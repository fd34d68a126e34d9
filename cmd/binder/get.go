package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"struct-binder/binder"
	"struct-binder/options"
	"struct-binder/source"
)

var targetTypes = map[string]reflect.Type{
	"any":      reflect.TypeFor[any](),
	"string":   reflect.TypeFor[string](),
	"int":      reflect.TypeFor[int](),
	"float":    reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"duration": reflect.TypeFor[time.Duration](),
	"strings":  reflect.TypeFor[[]string](),
	"ints":     reflect.TypeFor[[]int](),
	"map":      reflect.TypeFor[map[string]string](),
	"set":      reflect.TypeFor[map[string]struct{}](),
}

func typeNames() []string {
	names := make([]string, 0, len(targetTypes))
	for name := range targetTypes {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// bindFlags selects the target type and the binding behavior.
type bindFlags struct {
	typeName    string
	shallow     bool
	conversions []string
}

func (f *bindFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typeName, "type", "t", "any", "Target type: "+strings.Join(typeNames(), ", "))
	cmd.Flags().BoolVar(&f.shallow, "shallow", false, "Bind nested values only when they are scalars")
	cmd.Flags().StringSliceVar(&f.conversions, "convert", nil, "Allowed conversion categories, e.g. text_number,duration")
}

// binder builds the Binder and the target of a command.
func (f *bindFlags) binder(a *app) (*binder.Binder, binder.Bindable, error) {
	target, ok := targetTypes[f.typeName]
	if !ok {
		return nil, binder.Bindable{}, fmt.Errorf("unknown type %q, want one of %s", f.typeName, strings.Join(typeNames(), ", "))
	}

	opts := *a.opts
	opts.Conversions = append(slices.Clone(opts.Conversions), f.conversions...)
	if f.shallow {
		opts.Policy = options.PolicyShallow
	}

	b, err := binder.FromOptions(&opts, binder.WithLogger(a.log))
	if err != nil {
		return nil, binder.Bindable{}, err
	}

	return b, binder.Of(target), nil
}

// render encodes a bound value as YAML; absent values render as <absent>.
func render(res binder.Result) ([]byte, error) {
	if !res.IsPresent() {
		return []byte("<absent>\n"), nil
	}

	data, err := yaml.Marshal(res.Interface())
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return data, nil
}

func bindAndRender(b *binder.Binder, target binder.Bindable, path string, src source.Source) ([]byte, error) {
	res, err := b.BindString(path, target, src)
	if err != nil {
		return nil, err
	}

	return render(res)
}

func newGetCmd(a *app) *cobra.Command {
	var (
		src  sourceFlags
		bind bindFlags
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Bind the value at a path and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, target, err := bind.binder(a)
			if err != nil {
				return err
			}

			s, release, err := src.open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			res, err := b.BindString(args[0], target, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if dump && res.IsPresent() {
				spew.Fdump(out, res.Interface())
				return nil
			}

			data, err := render(res)
			if err != nil {
				return err
			}

			_, err = out.Write(data)

			return err
		},
	}

	src.register(cmd)
	bind.register(cmd)
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the bound value with its Go types")

	return cmd
}
