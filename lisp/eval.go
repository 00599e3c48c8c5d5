// Copyright © 2018 The ELPS authors

package lisp

// Eval evaluates ast in env.  Errors are returned as error values and are
// never raised as Go panics.
func (rt *Runtime) Eval(ast *Value, env *Env) *Value {
	switch ast.Type {
	case VEOI, VNil:
		return ast
	case VList:
	default:
		return rt.evalAST(ast, env)
	}
	if ast.Len() == 0 {
		return ast
	}
	if head := ast.Cells[0]; head.Type == VSymbol {
		if special, ok := rt.specials[head.Text()]; ok {
			return special(rt, ast, env)
		}
	}
	evaluated := rt.evalAST(ast, env)
	if evaluated.IsError() {
		return evaluated
	}
	return rt.apply(ast, evaluated.Cells[0], evaluated.Items()[1:])
}

// evalAST resolves symbols and evaluates the elements of containers.
// Hashmap keys are not evaluated.
func (rt *Runtime) evalAST(ast *Value, env *Env) *Value {
	switch ast.Type {
	case VSymbol:
		v, ok := env.Get(ast)
		if !ok {
			return rt.Errorf(ErrRuntime, ast.Token, "var '%s' not found", PrintString(ast))
		}
		return v
	case VList, VVector:
		cells := make([]*Value, len(ast.Cells))
		for i, c := range ast.Cells {
			v := rt.Eval(c, env)
			if v.IsError() {
				return v
			}
			cells[i] = v
		}
		v := rt.track(&Value{Type: ast.Type, Cells: cells, Token: ast.Token})
		return v
	case VHashMap:
		t := rt.NewTable(ast.Map.Cap())
		var lerr *Value
		ast.Map.Range(func(k, v *Value) bool {
			ev := rt.Eval(v, env)
			if ev.IsError() {
				lerr = ev
				return false
			}
			t.Set(k, ev)
			return true
		})
		if lerr != nil {
			return lerr
		}
		v := rt.HashMap(t)
		v.Token = ast.Token
		return v
	default:
		return ast
	}
}

// apply calls fun with args.  The original form positions errors that have
// no token of their own.
func (rt *Runtime) apply(form, fun *Value, args []*Value) *Value {
	prev := rt.callSite
	rt.callSite = form
	defer func() { rt.callSite = prev }()
	switch fun.Type {
	case VFunction:
		return fun.Fun.Fn(rt, args)
	case VHashMap:
		return rt.lookupApply(form, fun, args)
	default:
		return rt.Errorf(ErrRuntime, form.Token, "first list item not callable '%s'", PrintString(fun))
	}
}

// lookupApply applies a hashmap as a function.  Each argument is looked up
// in the result of the previous lookup.  A list or vector argument selects
// several keys at once and produces a hashmap of them.
func (rt *Runtime) lookupApply(form, m *Value, args []*Value) *Value {
	cur := m
	for _, arg := range args {
		if cur.Type != VHashMap {
			return rt.Errorf(ErrRuntime, arg.Token, "var '%s' not found", PrintString(arg))
		}
		if !arg.IsSeq() {
			v, ok := cur.Map.Get(arg)
			if !ok {
				return rt.Errorf(ErrRuntime, arg.Token, "var '%s' not found", PrintString(arg))
			}
			cur = v
			continue
		}
		keys := arg.Items()
		sub := rt.NewTable(len(keys) * 2)
		for _, k := range keys {
			v, ok := cur.Map.Get(k)
			if !ok {
				return rt.Errorf(ErrRuntime, k.Token, "var '%s' not found", PrintString(k))
			}
			sub.Set(k, v)
		}
		cur = rt.HashMap(sub)
		cur.Token = form.Token
	}
	return cur
}

// evalDef implements (def! symbol value).  The symbol is bound in env only
// when value does not evaluate to an error.
func (rt *Runtime) evalDef(ast *Value, env *Env) *Value {
	if ast.Len() != 3 || !ast.Tail().IsNil() {
		return rt.Errorf(ErrRuntime, ast.Token, "def! expects a symbol and a value")
	}
	sym := ast.Cells[1]
	if sym.Type != VSymbol {
		return rt.Errorf(ErrRuntime, sym.Token, "binding error, '%s' is not a symbol", PrintString(sym))
	}
	v := rt.Eval(ast.Cells[2], env)
	if !v.IsError() {
		env.Put(sym, v)
	}
	return v
}

// evalLet implements (let* (sym val ...) body).  Bindings are evaluated in
// order in a new scope, so each may refer to the ones before it.
func (rt *Runtime) evalLet(ast *Value, env *Env) *Value {
	if ast.Len() != 3 || !ast.Tail().IsNil() {
		return rt.Errorf(ErrRuntime, ast.Token, "expected the proper list with exactly three elements")
	}
	bindings := ast.Cells[1]
	if !bindings.IsSeq() {
		return rt.Errorf(ErrRuntime, bindings.Token, "binding error, '%s' is not a list of bindings", PrintString(bindings))
	}
	forms := bindings.Items()
	if len(forms)%2 != 0 {
		return rt.Errorf(ErrRuntime, bindings.Token, "binding error, odd number of binding forms")
	}
	scope := rt.NewEnv(env)
	for i := 0; i < len(forms); i += 2 {
		sym := forms[i]
		if sym.Type != VSymbol {
			return rt.Errorf(ErrRuntime, sym.Token, "binding error, '%s' is not a symbol", PrintString(sym))
		}
		v := rt.Eval(forms[i+1], scope)
		if v.IsError() {
			return v
		}
		scope.Put(sym, v)
	}
	return rt.Eval(ast.Cells[2], scope)
}
