package transform_test

import (
	"testing"
)

func TestMethodCallMutation(t *testing.T) {
	got := rewrite(t, `function List() {
  let items = [];
  const add = () => { items.push(1); };
  return <ul>{items}</ul>;
}`)
	expectContains(t, got, "(items.peek().push(1), items.notify());")
	expectNotContains(t, got, "items.value.push")
}

func TestMutationArgumentReadsRewritten(t *testing.T) {
	got := rewrite(t, `function List() {
  let items = [];
  let next = 0;
  const add = () => { items.push(next); };
  return <ul>{items}{next}</ul>;
}`)
	expectContains(t, got, "(items.peek().push(next.value), items.notify());")
}

func TestPropertyAssignmentMutation(t *testing.T) {
	got := rewrite(t, `function Form() {
  let user = { name: "" };
  const rename = (n) => { user.name = n; };
  return <div>{user}</div>;
}`)
	expectContains(t, got, `(user.peek().name = n, user.notify());`)
}

func TestIndexAssignmentMutation(t *testing.T) {
	got := rewrite(t, `function Grid() {
  let rows = [0];
  const set = (v) => { rows[0] = v; };
  return <div>{rows}</div>;
}`)
	expectContains(t, got, "(rows.peek()[0] = v, rows.notify());")
}

func TestAugmentedAssignmentMutation(t *testing.T) {
	got := rewrite(t, `function Tally() {
  let totals = { sum: 0 };
  const bump = (n) => { totals.sum += n; };
  return <div>{totals}</div>;
}`)
	expectContains(t, got, "(totals.peek().sum += n, totals.notify());")
}

func TestDeleteMutation(t *testing.T) {
	got := rewrite(t, `function Bag() {
  let obj = { k: 1 };
  const drop = () => { delete obj.k; };
  return <div>{obj}</div>;
}`)
	expectContains(t, got, "(delete obj.peek().k, obj.notify());")
}

func TestObjectAssignMutation(t *testing.T) {
	got := rewrite(t, `function Merge() {
  let state = {};
  const apply = (patch) => { Object.assign(state, patch); };
  return <div>{state}</div>;
}`)
	expectContains(t, got, "(Object.assign(state.peek(), patch), state.notify());")
}

func TestChainedRootMutation(t *testing.T) {
	got := rewrite(t, `function Nested() {
  let state = { items: [] };
  const add = (x) => { state.items.push(x); };
  return <div>{state}</div>;
}`)
	expectContains(t, got, "(state.peek().items.push(x), state.notify());")
}

func TestStaticVariableMutationUntouched(t *testing.T) {
	got := rewrite(t, `function Quiet() {
  let buffer = [];
  buffer.push("log");
  return <div>done</div>;
}`)
	expectContains(t, got, `buffer.push("log");`)
	expectNotContains(t, got, "peek")
	expectNotContains(t, got, "notify")
}

func TestMutationRangeExcludedFromValueRewrite(t *testing.T) {
	got := rewrite(t, `function Counter() {
  let count = 0;
  const reset = () => { count = 0; };
  let history = [];
  const log = () => { history.push(count); };
  return <div>{count}{history}</div>;
}`)
	// Inside the mutation the root stays bare and the argument reads through
	// the accessor; outside it the plain assignment uses the accessor.
	expectContains(t, got, "(history.peek().push(count.value), history.notify());")
	expectContains(t, got, "count.value = 0;")
}
