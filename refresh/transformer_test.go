package refresh_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsxrefresh/config"
	"github.com/viant/jsxrefresh/inspector/jsx"
	"github.com/viant/jsxrefresh/refresh"
)

// normalize trims every line and drops blank ones, so expectations ignore indentation
func normalize(code string) string {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func transform(t *testing.T, moduleID, source string, options ...refresh.Option) (string, *refresh.Result) {
	t.Helper()
	file, err := jsx.NewInspector().InspectSource([]byte(source))
	require.NoError(t, err)
	require.False(t, file.HasError, "fixture should parse cleanly")
	result, err := refresh.New(moduleID, options...).Transform(file.Module)
	require.NoError(t, err)
	code, err := (&jsx.Emitter{}).Emit(result.Module)
	require.NoError(t, err)
	return string(code), result
}

const (
	prologue = `var __prevRefreshReg = global.$RefreshReg$;
var __prevRefreshSig = global.$RefreshSig$;
global.$RefreshReg$ = global.$RefreshRuntime$.getRegisterFunction();`
	signature = `global.$RefreshSig$ = global.$RefreshRuntime$.getCreateSignatureFunction();
var __s = global.$RefreshSig$();`
	restore = `global.$RefreshReg$ = __prevRefreshReg;
global.$RefreshSig$ = __prevRefreshSig;`
)

func TestTransformer_Transform(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      string
		unchanged   bool
		components  []string
	}{
		{
			description: "non component bindings",
			source: `const NAME = 'react-refresh';
export const TIMEOUT = 5000;
const styles = StyleSheet.create({});`,
			unchanged: true,
		},
		{
			description: "multiple arrow components",
			source: `export const MultipleA = () => {
  return <div>{'Hello, World'}</div>;
};

export const MultipleB = () => {
  return <div>{'Hello, World'}</div>;
};`,
			expect: prologue + `
export const MultipleA = () => {
return <div>{'Hello, World'}</div>;
};
export const MultipleB = () => {
return <div>{'Hello, World'}</div>;
};
global.$RefreshReg$(MultipleA, "MultipleA");
global.$RefreshRuntime$.getContext(MultipleA).accept();
global.$RefreshReg$(MultipleB, "MultipleB");
global.$RefreshRuntime$.getContext(MultipleB).accept();
` + restore,
			components: []string{"MultipleA", "MultipleB"},
		},
		{
			description: "call that is not a hook",
			source: `export const NotHook = () => {
  notValidHook();

  return <div>{'Hello, World'}</div>;
};`,
			expect: prologue + `
export const NotHook = () => {
notValidHook();
return <div>{'Hello, World'}</div>;
};
global.$RefreshReg$(NotHook, "NotHook");
global.$RefreshRuntime$.getContext(NotHook).accept();
` + restore,
			components: []string{"NotHook"},
		},
		{
			description: "multiple declarators",
			source: `var A, B, C = () => {
  return <div>{'Hello, World'}</div>;
};`,
			unchanged: true,
		},
		{
			description: "builtin hook expression statement",
			source: `export function NonDeclBuiltinHook() {
  useEffect(() => {}, []);

  return <div>{'Hello, World'}</div>;
}`,
			expect: prologue + "\n" + signature + `
export function NonDeclBuiltinHook() {
__s();
useEffect(() => {}, []);
return <div>{'Hello, World'}</div>;
}
__s(NonDeclBuiltinHook, "test:NonDeclBuiltinHook", false);
global.$RefreshReg$(NonDeclBuiltinHook, "NonDeclBuiltinHook");
global.$RefreshRuntime$.getContext(NonDeclBuiltinHook).accept();
` + restore,
			components: []string{"NonDeclBuiltinHook"},
		},
		{
			description: "mixed builtin hooks",
			source: `export function MixedBuiltinHooks() {
  const [number, setNumber] = useState(0);

  useMemo(() => 0);
  useCallback(() => {});

  useEffect(() => {}, []);
  useLayoutEffect(() => {}, []);

  return <div>{'Hello, World'}</div>;
}`,
			expect: prologue + "\n" + signature + `
export function MixedBuiltinHooks() {
__s();
const [number, setNumber] = useState(0);
useMemo(() => 0);
useCallback(() => {});
useEffect(() => {}, []);
useLayoutEffect(() => {}, []);
return <div>{'Hello, World'}</div>;
}
__s(MixedBuiltinHooks, "test:MixedBuiltinHooks", false);
global.$RefreshReg$(MixedBuiltinHooks, "MixedBuiltinHooks");
global.$RefreshRuntime$.getContext(MixedBuiltinHooks).accept();
` + restore,
			components: []string{"MixedBuiltinHooks"},
		},
		{
			description: "mixed custom hooks",
			source: `export function MixedCustomHooks() {
  useMyCustomHook();

  const hookValue = useMyCustomHookDecl();

  return <div>{'Hello, World'}</div>;
}`,
			expect: prologue + "\n" + signature + `
export function MixedCustomHooks() {
__s();
useMyCustomHook();
const hookValue = useMyCustomHookDecl();
return <div>{'Hello, World'}</div>;
}
__s(MixedCustomHooks, "test:MixedCustomHooks", true);
global.$RefreshReg$(MixedCustomHooks, "MixedCustomHooks");
global.$RefreshRuntime$.getContext(MixedCustomHooks).accept();
` + restore,
			components: []string{"MixedCustomHooks"},
		},
		{
			description: "memo wrapped anonymous arrow",
			source: `const MemoComponentA = React.memo(() => {
  return <div>{'Hello World'}</div>;
});`,
			expect: prologue + `
const MemoComponentA = React.memo(() => {
return <div>{'Hello World'}</div>;
});
global.$RefreshReg$(MemoComponentA, "MemoComponentA");
global.$RefreshRuntime$.getContext(MemoComponentA).accept();
` + restore,
			components: []string{"MemoComponentA"},
		},
		{
			description: "exported hoc wrapping named function",
			source: `export const ForwardedComponent = forwardedRef(function OriginComponent() {
  return <div>{'Hello World'}</div>;
});`,
			expect: prologue + `
export const ForwardedComponent = forwardedRef(function OriginComponent() {
return <div>{'Hello World'}</div>;
});
global.$RefreshReg$(ForwardedComponent, "ForwardedComponent");
global.$RefreshRuntime$.getContext(ForwardedComponent).accept();
` + restore,
			components: []string{"ForwardedComponent"},
		},
		{
			description: "default import re-exported",
			source: `import RootComponent from 'app/core';

export { RootComponent };`,
			unchanged: true,
		},
		{
			description: "named imports re-exported",
			source: `import { Button, Text } from 'app/design-system';

export { Button, Text };`,
			unchanged: true,
		},
		{
			description: "class component",
			source: `class ClassComponent extends React.Component {
  render () {
    return <div>{'Hello, World'}</div>;
  }
}`,
			unchanged: true,
		},
		{
			description: "anonymous default export",
			source: `export default () => {
  return <div>{'Hello World'}</div>;
};`,
			unchanged: true,
		},
		{
			description: "component exported by name after declaration",
			source: `const ArrowComponentNamedExport = () => {
  return <div>{'Hello World'}</div>;
};

export { ArrowComponentNamedExport as Rename };`,
			expect: prologue + `
const ArrowComponentNamedExport = () => {
return <div>{'Hello World'}</div>;
};
export { ArrowComponentNamedExport as Rename };
global.$RefreshReg$(ArrowComponentNamedExport, "ArrowComponentNamedExport");
global.$RefreshRuntime$.getContext(ArrowComponentNamedExport).accept();
` + restore,
			components: []string{"ArrowComponentNamedExport"},
		},
		{
			description: "empty body",
			source:      `const Foo = () => {};`,
			unchanged:   true,
		},
		{
			description: "empty hoc argument body",
			source:      `const Empty = memo(() => {});`,
			unchanged:   true,
		},
		{
			description: "hoc without function argument",
			source:      `const Foo = memo(Bar);`,
			expect: prologue + `
const Foo = memo(Bar);
global.$RefreshReg$(Foo, "Foo");
global.$RefreshRuntime$.getContext(Foo).accept();
` + restore,
			components: []string{"Foo"},
		},
		{
			description: "arrow with empty default callback parameter",
			source: `const Button = ({ onClick = () => {} }) => {
  const [pressed, setPressed] = useState(false);
  return <button onClick={onClick}/>;
};`,
			expect: prologue + "\n" + signature + `
const Button = ({ onClick = () => {} }) => {
__s();
const [pressed, setPressed] = useState(false);
return <button onClick={onClick}/>;
};
__s(Button, "test:Button", false);
global.$RefreshReg$(Button, "Button");
global.$RefreshRuntime$.getContext(Button).accept();
` + restore,
			components: []string{"Button"},
		},
		{
			description: "function with empty default callback parameter",
			source: `function Toggle({ onChange = () => {} }) {
  return <input onChange={onChange}/>;
}`,
			expect: prologue + `
function Toggle({ onChange = () => {} }) {
return <input onChange={onChange}/>;
}
global.$RefreshReg$(Toggle, "Toggle");
global.$RefreshRuntime$.getContext(Toggle).accept();
` + restore,
			components: []string{"Toggle"},
		},
		{
			description: "lowercase function",
			source: `function helper() {
  const [a] = useState(0);
  return a;
}`,
			unchanged: true,
		},
		{
			description: "binding shadowing an import",
			source: `import Header from './header';
const Header = () => {
  return <header/>;
};`,
			unchanged: true,
		},
		{
			description: "binding shadowing an exported class",
			source: `export default class Page extends React.Component {}
const Page = () => {
  return <main/>;
};`,
			unchanged: true,
		},
		{
			description: "namespace import does not exclude",
			source: `import * as Icons from './icons';
const Icons = () => {
  return <svg/>;
};`,
			expect: prologue + `
import * as Icons from './icons';
const Icons = () => {
return <svg/>;
};
global.$RefreshReg$(Icons, "Icons");
global.$RefreshRuntime$.getContext(Icons).accept();
` + restore,
			components: []string{"Icons"},
		},
		{
			description: "expression bodied arrow",
			source:      `export const Label = ({ text }) => <span>{text}</span>;`,
			expect: prologue + `
export const Label = ({ text }) => <span>{text}</span>;
global.$RefreshReg$(Label, "Label");
global.$RefreshRuntime$.getContext(Label).accept();
` + restore,
			components: []string{"Label"},
		},
		{
			description: "member hook is not counted",
			source: `function Counter() {
  const [n] = React.useState(0);
  return n;
}`,
			expect: prologue + `
function Counter() {
const [n] = React.useState(0);
return n;
}
global.$RefreshReg$(Counter, "Counter");
global.$RefreshRuntime$.getContext(Counter).accept();
` + restore,
			components: []string{"Counter"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			code, result := transform(t, "test", testCase.source, refresh.WithProbe(refresh.ProbeWhenHooked))
			if testCase.unchanged {
				assert.Equal(t, testCase.source, code)
				assert.False(t, result.Changed())
				return
			}
			assert.Equal(t, normalize(testCase.expect), normalize(code))
			var names []string
			for _, component := range result.Components {
				names = append(names, component.Name)
			}
			assert.Equal(t, testCase.components, names)
		})
	}
}

func TestTransformer_ProbeAlways(t *testing.T) {
	source := `export const Foo = () => { return x; };`
	code, result := transform(t, "m", source, refresh.WithProbe(refresh.ProbeAlways))
	expect := prologue + "\n" + signature + `
export const Foo = () => { __s(); return x; };
global.$RefreshReg$(Foo, "Foo");
global.$RefreshRuntime$.getContext(Foo).accept();
` + restore
	assert.Equal(t, normalize(expect), normalize(code))
	require.Len(t, result.Components, 1)
	component := result.Components[0]
	assert.Equal(t, "m:Foo", component.ID)
	assert.Equal(t, refresh.ArrowComponent, component.Kind)
	assert.False(t, component.HasHooks())
	assert.Equal(t, 1, strings.Count(code, "__prevRefreshReg = global"))
	assert.NotContains(t, code, `__s(Foo,`)

	hookless, _ := transform(t, "m", source)
	assert.NotContains(t, hookless, "__s")
}

func TestTransformer_HookSignature(t *testing.T) {
	source := `function Foo() {
  const [value, setValue] = useState(0);
  return <input value={value} onChange={setValue}/>;
}`
	code, result := transform(t, "mod", source)
	expect := prologue + "\n" + signature + `
function Foo() {
__s();
const [value, setValue] = useState(0);
return <input value={value} onChange={setValue}/>;
}
__s(Foo, "mod:Foo", false);
global.$RefreshReg$(Foo, "Foo");
global.$RefreshRuntime$.getContext(Foo).accept();
` + restore
	assert.Equal(t, normalize(expect), normalize(code))
	require.Len(t, result.Components, 1)
	assert.Equal(t, 1, result.Components[0].BuiltinHooks)
	assert.Equal(t, 0, result.Components[0].CustomHooks)
	assert.Equal(t, refresh.FunctionComponent, result.Components[0].Kind)
}

func TestTransformer_Order(t *testing.T) {
	source := `const B = () => {
  useTheme();
  return null;
};
function A() {
  return null;
}
export { A, B };`
	code, result := transform(t, "order", source)
	require.Len(t, result.Components, 2)
	assert.Equal(t, "B", result.Components[0].Name)
	assert.Equal(t, "A", result.Components[1].Name)
	sigB := strings.Index(code, `__s(B, "order:B", true);`)
	regB := strings.Index(code, `global.$RefreshReg$(B, "B");`)
	regA := strings.Index(code, `global.$RefreshReg$(A, "A");`)
	restoreAt := strings.Index(code, `global.$RefreshReg$ = __prevRefreshReg;`)
	assert.True(t, sigB > 0 && sigB < regB && regB < regA && regA < restoreAt, code)
	assert.NotContains(t, code, `__s(A,`)
}

func TestTransformer_Duplicate(t *testing.T) {
	source := `function Foo() {
  return 1;
}
function Foo() {
  return 2;
}`
	code, result := transform(t, "test", source, refresh.WithProbe(refresh.ProbeAlways))
	require.Len(t, result.Components, 1)
	assert.Equal(t, 1, strings.Count(code, `global.$RefreshReg$(Foo, "Foo");`))
	assert.Equal(t, 1, strings.Count(code, "__s();"))
	assert.Contains(t, normalize(code), "function Foo() {\n__s();\nreturn 1;\n}\nfunction Foo() {\nreturn 2;\n}")
}

func TestTransformer_Scope(t *testing.T) {
	source := `function List() {
  const items = useMemo(() => {
    return [];
  }, []);
  return items;
}`
	var testCases = []struct {
		description string
		scope       refresh.Scope
		expectBody  string
		probes      int
	}{
		{
			description: "outermost body only",
			scope:       refresh.ScopeOutermost,
			expectBody: `function List() {
__s();
const items = useMemo(() => {
return [];
}, []);
return items;
}`,
			probes: 1,
		},
		{
			description: "nested callbacks",
			scope:       refresh.ScopeNested,
			expectBody: `function List() {
__s();
const items = useMemo(() => {
__s();
return [];
}, []);
return items;
}`,
			probes: 2,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			code, result := transform(t, "test", source, refresh.WithScope(testCase.scope))
			assert.Contains(t, normalize(code), testCase.expectBody)
			assert.Equal(t, testCase.probes, strings.Count(code, "__s();"))
			require.Len(t, result.Components, 1)
			assert.Equal(t, 1, result.Components[0].BuiltinHooks)
		})
	}
}

func TestTransformer_HMRRuntime(t *testing.T) {
	source := `export function Counter() {
  const [n] = useState(0);
  return n;
}`
	code, _ := transform(t, "src/Counter.jsx", source, refresh.WithRuntime(refresh.HMRRuntime{}), refresh.WithRoot("globalThis"))
	expect := `var __prevRefreshReg = globalThis.$RefreshReg$;
var __prevRefreshSig = globalThis.$RefreshSig$;
globalThis.$RefreshReg$ = (type, id) => globalThis.$RefreshRuntime$.register(type, id);
globalThis.$RefreshSig$ = globalThis.$RefreshRuntime$.createSignatureFunctionForTransform;
var __s = globalThis.$RefreshSig$();
export function Counter() {
__s();
const [n] = useState(0);
return n;
}
__s(Counter, "src/Counter.jsx:Counter", false);
globalThis.$RefreshReg$(Counter, "src/Counter.jsx:Counter");
globalThis.__hmr(Counter, "src/Counter.jsx:Counter").accept();
globalThis.$RefreshReg$ = __prevRefreshReg;
globalThis.$RefreshSig$ = __prevRefreshSig;`
	assert.Equal(t, expect, normalize(code))
}

func TestTransformer_NoComponents(t *testing.T) {
	file, err := jsx.NewInspector().InspectSource([]byte(`const a = 1;`))
	require.NoError(t, err)
	result, err := refresh.New("test").Transform(file.Module)
	require.NoError(t, err)
	assert.Same(t, file.Module, result.Module)
	assert.Empty(t, result.Components)
}

func TestTransformer_ModuleID(t *testing.T) {
	file, err := jsx.NewInspector().InspectSource([]byte(`function Foo() { return 1; }`))
	require.NoError(t, err)
	_, err = refresh.New("").Transform(file.Module)
	assert.ErrorIs(t, err, config.ErrModuleID)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestOptionsFrom(t *testing.T) {
	var testCases = []struct {
		description string
		options     *config.Options
		expectErr   bool
		contains    string
	}{
		{description: "defaults", options: config.DefaultOptions(), contains: "getContext(Foo).accept()"},
		{description: "hmr runtime", options: &config.Options{Runtime: config.RuntimeHMR}, contains: `__hmr(Foo, "m:Foo").accept()`},
		{description: "custom root", options: &config.Options{Root: "window"}, contains: "window.$RefreshReg$(Foo"},
		{description: "unknown runtime", options: &config.Options{Runtime: "webpack"}, expectErr: true},
		{description: "unknown scope", options: &config.Options{Scope: "deep"}, expectErr: true},
		{description: "unknown probe", options: &config.Options{Probe: "never"}, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			options, err := refresh.OptionsFrom(testCase.options)
			if testCase.expectErr {
				assert.ErrorIs(t, err, config.ErrConfig)
				return
			}
			require.NoError(t, err)
			code, _ := transform(t, "m", `function Foo() { return 1; }`, options...)
			assert.Contains(t, code, testCase.contains)
		})
	}
}
