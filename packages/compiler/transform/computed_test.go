package transform_test

import (
	"testing"
)

func TestComputedWrapAndRead(t *testing.T) {
	got := rewrite(t, `function Price() {
  let price = 10;
  const taxed = price * 1.2;
  return <span>{taxed}</span>;
}`)
	expectContains(t, got, "const taxed = computed(() => price.value * 1.2);")
	expectContains(t, got, "{taxed.value}")
}

func TestReadAtInitializerTailLandsInsideWrap(t *testing.T) {
	got := rewrite(t, `function Chain() {
  let base = 1;
  const alias = base;
  const twice = alias + alias;
  return <span>{twice}</span>;
}`)
	// The trailing read's accessor must land before the closing parenthesis.
	expectContains(t, got, "const alias = computed(() => base.value);")
	expectContains(t, got, "const twice = computed(() => alias.value + alias.value);")
}

func TestStaticConstUntouched(t *testing.T) {
	got := rewrite(t, `function Page() {
  const title = "hello";
  return <h1>{title}</h1>;
}`)
	expectContains(t, got, `const title = "hello";`)
	expectNotContains(t, got, "computed")
}

func TestDestructuredSignalAPIExpansion(t *testing.T) {
	got := rewrite(t, `import { query } from "vertz";

function Profile() {
  const { data, refetch } = query("/api/user");
  return <div>{data}</div>;
}`)
	expectContains(t, got, `const __query_0 = query("/api/user");`)
	expectContains(t, got, "const data = computed(() => __query_0.data.value);")
	expectContains(t, got, "const refetch = __query_0.refetch;")
	expectContains(t, got, "{data.value}")
	expectNotContains(t, got, "{ data, refetch }")
}

func TestDestructuredExpansionKeepsStatementShape(t *testing.T) {
	src := `import { query } from "vertz";

function Profile() {
  const { data } = query("/api/user");
  return <div>{data}</div>;
}`
	want := `import { query } from "vertz";

function Profile() {
  const __query_0 = query("/api/user");
  const data = computed(() => __query_0.data.value);
  return <div>{data.value}</div>;
}`
	if got := rewrite(t, src); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestGenericDestructuredComputedExpansion(t *testing.T) {
	got := rewrite(t, `function Box() {
  let size = 2;
  const { w, h } = makeBox(size);
  return <div>{w}{h}</div>;
}`)
	expectContains(t, got, "const w = computed(() => (makeBox(size.value)).w);")
	expectContains(t, got, "const h = computed(() => (makeBox(size.value)).h);")
}

func TestReactiveSourceDerivedComputed(t *testing.T) {
	got := rewrite(t, `import { useContext } from "vertz";

function Themed() {
  const theme = useContext(ThemeContext);
  const label = theme.name + "!";
  return <div>{label}</div>;
}`)
	expectContains(t, got, `const label = computed(() => theme.name.value + "!");`)
	expectContains(t, got, "{label.value}")
}
