package lispy

import "testing"

func Test_Builtin_List_Ops(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"(cons 1 (quote (2 3)))", "(1 2 3)"},
		{"(cons 1 (quote ()))", "(1)"},
		{"(car (quote (a b c)))", "a"},
		{"(cdr (quote (a b c)))", "(b c)"},
		{"(cdr (quote (a)))", "()"},
		{"(cdr (quote ()))", "()"},
		{"(append)", "()"},
		{"(append (list 1 2) (list) (list 3))", "(1 2 3)"},
		{"(list)", "()"},
		{"(list 1 (+ 1 1) (quote x))", "(1 2 x)"},
		{"(length (list 1 2 3))", "3"},
		{"(length (quote ()))", "0"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			wantPrint(t, evalSrc(t, c.src), c.want)
		})
	}
}

func Test_Builtin_List_Predicates(t *testing.T) {
	wantBool(t, evalSrc(t, "(list? (list))"), true)
	wantBool(t, evalSrc(t, "(list? 1)"), false)
	wantBool(t, evalSrc(t, "(null? (quote ()))"), true)
	wantBool(t, evalSrc(t, "(null? (list 1))"), false)
	wantBool(t, evalSrc(t, "(null? 0)"), false)
	wantBool(t, evalSrc(t, "(symbol? (quote a))"), true)
	wantBool(t, evalSrc(t, "(symbol? 1)"), false)
}

func Test_Builtin_List_Errors(t *testing.T) {
	evalErr(t, "(car (quote ()))", ErrPrimitiveFailed)
	evalErr(t, "(car 1)", ErrPrimitiveFailed)
	evalErr(t, "(cons 1 2)", ErrPrimitiveFailed)
	evalErr(t, "(append (list 1) 2)", ErrPrimitiveFailed)
	evalErr(t, "(length 5)", ErrPrimitiveFailed)
}

func Test_Builtin_List_Ops_Do_Not_Mutate(t *testing.T) {
	ip := NewInterpreter()
	mustEvalPersistent(t, ip, "(define xs (list 1 2 3))")
	mustEvalPersistent(t, ip, "(define ys (cons 0 (cdr xs)))")
	mustEvalPersistent(t, ip, "(define zs (append (cdr xs) (list 9)))")
	wantPrint(t, mustEvalPersistent(t, ip, "xs"), "(1 2 3)")
	wantPrint(t, mustEvalPersistent(t, ip, "ys"), "(0 2 3)")
	wantPrint(t, mustEvalPersistent(t, ip, "zs"), "(2 3 9)")
}
