package orchestrator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

type plan struct {
	ID    string
	Name  string
	Price int64
}

func planSchema(p *plan) model.Schema {
	name, price := "", int64(0)
	if p != nil {
		name, price = p.Name, p.Price
	}
	return model.NewSchema(
		model.Field{Name: "name", Required: true, Default: name},
		model.Field{Name: "price", Type: model.FieldTypeMoney, Default: price},
	)
}

func TestOrchestrator_SubmitFlow(t *testing.T) {
	var submitted []map[string]any
	o := orchestrator.New(orchestrator.WithSubmitHandler(func(values map[string]any) {
		submitted = append(submitted, values)
	}))

	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}

	if o.Submit() {
		t.Fatalf("expected submit to be blocked")
	}
	if len(submitted) != 0 {
		t.Fatalf("expected no submit callback for invalid form")
	}
	name, err := o.Bind("name")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if got := name.Snapshot(); !got.IsInvalid || got.ErrorMessage != "This field is required" {
		t.Fatalf("expected name to surface MissingValue, got %+v", got)
	}

	price, err := o.Bind("price")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := name.Update("Plano Ouro"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	if err := price.Update("10,00"); err != nil {
		t.Fatalf("update price: %v", err)
	}

	if !o.Submit() {
		t.Fatalf("expected submit to succeed")
	}
	want := []map[string]any{{"name": "Plano Ouro", "price": int64(1000)}}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ChangeHandlerSkipsConstruction(t *testing.T) {
	var changes []map[string]any
	o := orchestrator.New(orchestrator.WithChangeHandler(func(g *form.Group) {
		changes = append(changes, g.Values())
	}))

	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no change on construction, got %d", len(changes))
	}

	if err := o.SetValues(map[string]any{"name": "Basic"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if err := o.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	o.Submit()

	want := []map[string]any{
		{"name": "Basic", "price": int64(0)},
		{"name": "", "price": int64(0)},
		{"name": "", "price": int64(0)},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_RebuildsOnDependencyChange(t *testing.T) {
	changes := 0
	o := orchestrator.New(orchestrator.WithChangeHandler(func(*form.Group) { changes++ }))

	gold := &plan{ID: "p1", Name: "Plano Ouro", Price: 4990}
	first, err := o.Use(planSchema(gold), gold)
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if err := first.SetValues(map[string]any{"name": "Edited"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	detachedNotifications := 0
	first.Subscribe(func(*form.Group) { detachedNotifications++ })

	same, err := o.Use(planSchema(&plan{ID: "p1", Name: "Plano Ouro", Price: 4990}), &plan{ID: "p1", Name: "Plano Ouro", Price: 4990})
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if same != first || o.Generation() != 1 {
		t.Fatalf("expected equal deps to keep the group, generation %d", o.Generation())
	}
	values, _ := o.Values()
	if values["name"] != "Edited" {
		t.Fatalf("expected edits to survive a no-op Use, got %v", values["name"])
	}

	silver := &plan{ID: "p2", Name: "Plano Prata", Price: 1990}
	second, err := o.Use(planSchema(silver), silver)
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if second == first || o.Generation() != 2 {
		t.Fatalf("expected a fresh group on dependency change")
	}
	if !first.Detached() {
		t.Fatalf("expected the previous group to be detached")
	}
	if o.Group() != second {
		t.Fatalf("expected handle to delegate to the new group")
	}

	want := map[string]any{"name": "Plano Prata", "price": int64(1990)}
	if diff := cmp.Diff(want, second.Values()); diff != "" {
		t.Fatalf("rebuilt values mismatch (-want +got):\n%s", diff)
	}
	name, _ := second.Control("name")
	if name.Touched() || name.Dirty() {
		t.Fatalf("expected rebuilt controls to start pristine")
	}

	before := changes
	if err := first.SetValues(map[string]any{"name": "stale"}); err != nil {
		t.Fatalf("set values on stale group: %v", err)
	}
	if changes != before || detachedNotifications != 0 {
		t.Fatalf("expected stale group to stay silent")
	}

	if err := o.SetValues(map[string]any{"name": "Prata+"}); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if changes != before+1 {
		t.Fatalf("expected change handler to follow the live group")
	}
}

func TestOrchestrator_DependencyArity(t *testing.T) {
	o := orchestrator.New()
	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}
	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}
	if o.Generation() != 1 {
		t.Fatalf("expected no rebuild for empty deps, got generation %d", o.Generation())
	}
	if _, err := o.Use(planSchema(nil), true); err != nil {
		t.Fatalf("use: %v", err)
	}
	if _, err := o.Use(planSchema(nil), false); err != nil {
		t.Fatalf("use: %v", err)
	}
	if o.Generation() != 3 {
		t.Fatalf("expected rebuilds on dependency changes, got generation %d", o.Generation())
	}
}

type storedPlan struct {
	ID    string
	price int64
	tags  []string
}

func TestOrchestrator_DependenciesWithUnexportedFields(t *testing.T) {
	o := orchestrator.New()

	use := func(dep storedPlan) {
		t.Helper()
		if _, err := o.Use(planSchema(&plan{ID: dep.ID, Price: dep.price}), dep); err != nil {
			t.Fatalf("use: %v", err)
		}
	}

	use(storedPlan{ID: "a", price: 4990})
	use(storedPlan{ID: "a", price: 4990, tags: []string{}})
	if o.Generation() != 1 {
		t.Fatalf("expected equal entities to keep the group, got generation %d", o.Generation())
	}

	use(storedPlan{ID: "a", price: 5990})
	if o.Generation() != 2 {
		t.Fatalf("expected an unexported field change to rebuild, got generation %d", o.Generation())
	}

	use(storedPlan{ID: "b", price: 5990})
	if o.Generation() != 3 {
		t.Fatalf("expected a new entity to rebuild, got generation %d", o.Generation())
	}
	values, _ := o.Values()
	if values["price"] != int64(5990) {
		t.Fatalf("expected price from the new entity, got %#v", values["price"])
	}
}

func TestOrchestrator_NotBuilt(t *testing.T) {
	o := orchestrator.New()

	if err := o.SetValues(map[string]any{"name": "x"}); !errors.Is(err, orchestrator.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if err := o.Reset(); !errors.Is(err, orchestrator.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if _, err := o.Values(); !errors.Is(err, orchestrator.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if _, err := o.Bind("name"); !errors.Is(err, orchestrator.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if _, err := o.Binders(); !errors.Is(err, orchestrator.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
	if o.Submit() || o.ValidateAll() {
		t.Fatalf("expected submit and validate to report false")
	}
	if o.Group() != nil {
		t.Fatalf("expected nil group")
	}
}

func TestOrchestrator_InvalidSchema(t *testing.T) {
	o := orchestrator.New()
	_, err := o.Use(model.NewSchema(model.Field{Name: "x", Type: "color"}))
	if !errors.Is(err, model.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
	if o.Group() != nil {
		t.Fatalf("expected failed build to leave no group")
	}
}

func TestOrchestrator_UnknownFieldFailsLoudly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := orchestrator.New(orchestrator.WithLogger(zap.New(core)))
	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}

	err := o.SetValues(map[string]any{"unknownField": "x"})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if logs.FilterMessage("form: rejected write to undeclared fields").Len() != 1 {
		t.Fatalf("expected rejected write to be logged, got %v", logs.All())
	}
	if logs.FilterMessage("orchestrator: built form group").Len() != 1 {
		t.Fatalf("expected build to be logged")
	}
}

func TestOrchestrator_BindersAndOptions(t *testing.T) {
	o := orchestrator.New(
		orchestrator.WithMessages(form.Messages{model.ErrorMissingValue: "Campo obrigatório"}),
		orchestrator.WithSanitizer(bluemonday.StrictPolicy()),
		orchestrator.WithDecorators(model.DefaultsFromJSON([]byte(`{"price": 990}`))),
	)
	if _, err := o.Use(planSchema(nil)); err != nil {
		t.Fatalf("use: %v", err)
	}

	binders, err := o.Binders()
	if err != nil {
		t.Fatalf("binders: %v", err)
	}
	var names []string
	for _, b := range binders {
		names = append(names, b.Name())
	}
	if diff := cmp.Diff([]string{"name", "price"}, names); diff != "" {
		t.Fatalf("binder order mismatch (-want +got):\n%s", diff)
	}

	o.Submit()
	if got := binders[0].Snapshot().ErrorMessage; got != "Campo obrigatório" {
		t.Fatalf("expected custom message, got %q", got)
	}
	if got := binders[1].Snapshot().MaskedValue; got != "9,90" {
		t.Fatalf("expected decorated default, got %q", got)
	}

	if err := binders[0].Update("<i>Ouro</i>"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := binders[0].Snapshot().Value; got != "Ouro" {
		t.Fatalf("expected sanitized value, got %v", got)
	}
}
