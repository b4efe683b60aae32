package transform_test

import (
	"testing"
)

func propObject(t *testing.T, source, element string) string {
	t.Helper()
	_, props := rewriteWithProps(t, source)
	for _, p := range props {
		if p.Element == element {
			return p.Object
		}
	}
	t.Fatalf("no prop object built for <%s>", element)
	return ""
}

func TestReactivePropBecomesGetter(t *testing.T) {
	obj := propObject(t, `function Parent() {
  let count = 0;
  return <Child count={count} />;
}`, "Child")
	want := "{ get count() { return count.value; } }"
	if obj != want {
		t.Errorf("expected %q, got %q", want, obj)
	}
}

func TestMixedPropKinds(t *testing.T) {
	obj := propObject(t, `function Parent() {
  let count = 0;
  return <Child count={count} label="Counter" enabled limit={10} />;
}`, "Child")
	want := `{ get count() { return count.value; }, label: "Counter", enabled: true, limit: 10 }`
	if obj != want {
		t.Errorf("expected %q, got %q", want, obj)
	}
}

func TestComputedPropGetter(t *testing.T) {
	obj := propObject(t, `function Parent() {
  let price = 10;
  const taxed = price * 1.2;
  return <Child total={taxed} />;
}`, "Child")
	want := "{ get total() { return taxed.value; } }"
	if obj != want {
		t.Errorf("expected %q, got %q", want, obj)
	}
}

func TestSpreadProp(t *testing.T) {
	obj := propObject(t, `function Parent() {
  const rest = { a: 1 };
  return <Child {...rest} />;
}`, "Child")
	want := "{ ...rest }"
	if obj != want {
		t.Errorf("expected %q, got %q", want, obj)
	}
}

func TestQuotedPropKey(t *testing.T) {
	obj := propObject(t, `function Parent() {
  return <Child data-testid="row" />;
}`, "Child")
	want := `{ "data-testid": "row" }`
	if obj != want {
		t.Errorf("expected %q, got %q", want, obj)
	}
}

func TestIntrinsicElementNoPropObject(t *testing.T) {
	_, props := rewriteWithProps(t, `function Page() {
  return <div id="root">hi</div>;
}`)
	if len(props) != 0 {
		t.Errorf("expected no prop objects for intrinsic elements, got %d", len(props))
	}
}

func TestNestedComponentObjects(t *testing.T) {
	_, props := rewriteWithProps(t, `function App() {
  let n = 0;
  return (
    <div>
      <Header title="top" />
      <Counter value={n} />
    </div>
  );
}`)
	if len(props) != 2 {
		t.Fatalf("expected 2 prop objects, got %d", len(props))
	}
	if props[0].Element != "Header" || props[1].Element != "Counter" {
		t.Errorf("unexpected element order: %s, %s", props[0].Element, props[1].Element)
	}
	if props[1].Object != "{ get value() { return n.value; } }" {
		t.Errorf("unexpected counter object %q", props[1].Object)
	}
}

func TestEmptyAttributeList(t *testing.T) {
	obj := propObject(t, `function Parent() {
  return <Child />;
}`, "Child")
	if obj != "{}" {
		t.Errorf("expected empty object literal, got %q", obj)
	}
}
