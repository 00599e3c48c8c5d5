// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/mal/maltest"
)

func TestEval(t *testing.T) {
	tests := maltest.TestSuite{
		{"atoms", maltest.TestSequence{
			{"", ""},
			{"1", "1"},
			{"-2.5", "-2.5"},
			{":kw", ":kw"},
			{"nil", "nil"},
			{"true", "true"},
			{`"a	b"`, "\"a\tb\""},
			{"()", "()"},
			{"[1 (+ 1 1)]", "[1 2]"},
			{"[1 : (+ 1 1)]", "[1 : 2]"},
			{"{:a (+ 1 2)}", "{:a: 3}"},
			{"(def! a 1) (+ a 1)", "2"},
		}},
		{"def!", maltest.TestSequence{
			{"(def! x 10)", "10"},
			{"x", "10"},
			{"(def! x (+ x 1))", "11"},
			{"x", "11"},
			{"(def! y foo)", "([ERROR]\n  [RUNTIME] L1 C9-11 var 'foo' not found\n)"},
			{"y", "([ERROR]\n  [RUNTIME] L1 C1 var 'y' not found\n)"},
			{"(def! 1 2)", "([ERROR]\n  [RUNTIME] L1 C7 binding error, '1' is not a symbol\n)"},
			{"(def! x)", "([ERROR]\n  [RUNTIME] L1 C1 def! expects a symbol and a value\n)"},
		}},
		{"let*", maltest.TestSequence{
			{"(let* (a 1 b 2) (+ a b))", "3"},
			{"(let* (a 1 b (+ a 1)) (+ a b))", "3"},
			{"(let* [a 1] a)", "1"},
			{"(def! a 5) (let* (a 1) a)", "1"},
			{"a", "5"},
			{"(let* (z 1) z) z", "([ERROR]\n  [RUNTIME] L1 C16 var 'z' not found\n)"},
			{"(let* (a 1))", "([ERROR]\n  [RUNTIME] L1 C1 expected the proper list with exactly three elements\n)"},
			{"(let* (a) a)", "([ERROR]\n  [RUNTIME] L1 C7 binding error, odd number of binding forms\n)"},
			{"(let* (1 2) 3)", "([ERROR]\n  [RUNTIME] L1 C8 binding error, '1' is not a symbol\n)"},
			{"(let* a 1)", "([ERROR]\n  [RUNTIME] L1 C7 binding error, 'a' is not a list of bindings\n)"},
		}},
		{"apply", maltest.TestSequence{
			{"foo", "([ERROR]\n  [RUNTIME] L1 C1-3 var 'foo' not found\n)"},
			{"(1 2)", "([ERROR]\n  [RUNTIME] L1 C1 first list item not callable '1'\n)"},
			{"(foo 2)", "([ERROR]\n  [RUNTIME] L1 C2-4 var 'foo' not found\n)"},
			{"(+ 1 (foo))", "([ERROR]\n  [RUNTIME] L1 C7-9 var 'foo' not found\n)"},
		}},
		{"hashmap lookup", maltest.TestSequence{
			{"(def! m {:b {:c 2}})", "{:b: {:c: 2}}"},
			{"(m :b)", "{:c: 2}"},
			{"(m :b :c)", "2"},
			{"(m [:b])", "{:b: {:c: 2}}"},
			{"(m :z)", "([ERROR]\n  [RUNTIME] L1 C4-5 var ':z' not found\n)"},
			{"(let* (n {:a 1 :b 2}) (n :b))", "2"},
			{"({1 2} 1)", "2"},
			{"(def! k {1 2})", "{1: 2}"},
			{"(k (+ 1 1))", "([ERROR]\n  [RUNTIME] L1 C1 var '2' not found\n)"},
			{"(k [(+ 0 1) (+ 1 1)])", "([ERROR]\n  [RUNTIME] L1 C1 var '2' not found\n)"},
		}},
		{"reader errors", maltest.TestSequence{
			{"(1 2", "([ERROR]\n  [READER] L1 C1 unbalanced parenthesis, expected ')'\n)"},
			{"1 ]", "([ERROR]\n  [READER] L1 C3 unbalanced brackets, expected '['\n)"},
			{"(def! q 1) )", "([ERROR]\n  [READER] L1 C12 unbalanced parenthesis, expected '('\n)"},
			{"q", "([ERROR]\n  [RUNTIME] L1 C1 var 'q' not found\n)"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestMath(t *testing.T) {
	tests := maltest.TestSuite{
		{"arithmetic", maltest.TestSequence{
			// arithmetic functions w/o args
			{"(+)", "0"},
			{"(-)", "0"},
			{"(*)", "1"},
			{"(/)", "1"},
			// arithmetic functions w/ one arg
			{"(+ 2)", "2"},
			{"(- 2)", "2"},
			{"(* 2.0)", "2.0"},
			{"(/ 2)", "2"},
			// arithmetic functions w/ several args
			{"(+ 1 2 3)", "6"},
			{"(+ 1 (* 2 3))", "7"},
			{"(+ 1 2.0)", "3.0"},
			{"(+ 1 1.5)", "2.5"},
			{"(- 0.5 1)", "-0.5"},
			{"(- 10 2 3)", "5"},
			{"(* 2 0.75)", "1.5"},
			{"(/ 7 2)", "3"},
			{"(/ -7 2)", "-3"},
			{"(/ 7 2.0)", "3.5"},
			{"(/ 1.0 0)", "+Inf"},
		}},
		{"errors", maltest.TestSequence{
			{"(/ 1 0)", "([ERROR]\n  [RUNTIME] L1 C6 division by zero\n)"},
			{`(+ 1 "x")`, "([ERROR]\n  [RUNTIME] L1 C6-8 args to '+' are not numbers '\"x\"'\n)"},
			{`(* :a 2)`, "([ERROR]\n  [RUNTIME] L1 C4-5 args to '*' are not numbers ':a'\n)"},
		}},
		{"overflow wraps", maltest.TestSequence{
			{"(+ 9223372036854775807 1)", "-9223372036854775808"},
			{"(- -9223372036854775808 1)", "9223372036854775807"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func TestSequences(t *testing.T) {
	tests := maltest.TestSuite{
		{"list", maltest.TestSequence{
			{"(list)", "()"},
			{"(list 1 2)", "(1 2)"},
			{"(list 1 [2 3] 4)", "(1 2 3 4)"},
			{"(list [1 : 2] 3)", "(1 2 3)"},
			{"(list {:a 1})", "(:a)"},
			{"(list (list 1 (list 2)))", "(1 2)"},
		}},
		{"vector", maltest.TestSequence{
			{"(vector)", "[]"},
			{"(vector 1 (list 2 3))", "[1 2 3]"},
		}},
		{"hashmap", maltest.TestSequence{
			{"(hashmap)", "{}"},
			{"(hashmap :a 1)", "{:a: 1}"},
			{"(hashmap :a)", "{:a: nil}"},
			{"(hashmap [:a 1])", "{:a: 1}"},
			{"(hashmap (list :a))", "{:a: nil}"},
			{"(hashmap {:a 1})", "{:a: 1}"},
			{"((hashmap :a 1) :a)", "1"},
		}},
		{"zip", maltest.TestSequence{
			{"(zip [1 2] [3 4])", "(1 3 2 4)"},
			{"(zip [1 2 3] (list 4 5))", "(1 4 2 5 3 nil)"},
			{"(zip [] [])", "()"},
			{"(hashmap (zip [:a] [1]))", "{:a: 1}"},
			{"(zip (list 1) (list 1 2))", "([ERROR]\n  [RUNTIME] L1 C1 in zip first list has to be equal or longer then second list\n)"},
			{"(zip [1] (list 1 2))", "([ERROR]\n  [RUNTIME] L1 C1 in zip first vector has to be equal or longer then second list\n)"},
			{"(zip [1])", "([ERROR]\n  [RUNTIME] L1 C1 zip expects two sequences\n)"},
		}},
		{"keys and vals", maltest.TestSequence{
			{"(keys {:a 1})", "(:a)"},
			{"(vals {:a 1})", "(1)"},
			{"(keys {})", "()"},
			{"(keys 1)", "([ERROR]\n  [RUNTIME] L1 C1 keys expects a hashmap\n)"},
		}},
	}
	maltest.RunTestSuite(t, tests)
}

func BenchmarkEnvGet(b *testing.B) {
	maltest.RunBenchmark(b, `
	  (let* (a0 0 a1 1 a2 2 a3 3 a4 4 a5 5 a6 6 a7 7 a8 8 a9 9)
	    (let* (b 1)
	      (+ a0 a1 a2 a3 a4 a5 a6 a7 a8 a9 b)))
	`)
}

func BenchmarkFunCallBuiltin(b *testing.B) {
	maltest.RunBenchmark(b, `(+ 0 1 2 3 4 5 6 7 8 9)`)
}

func BenchmarkHashMapLookup(b *testing.B) {
	maltest.RunBenchmark(b, `
	  (def! m (hashmap (zip [:a :b :c :d :e :f] [1 2 3 4 5 6])))
	  (m [:a :c :e])
	`)
}
