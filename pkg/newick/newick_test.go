package newick_test

import (
	"strings"
	"testing"

	"github.com/gnames/mycocurate/pkg/newick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameTips(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "iqtree gene tree",
			in:   "(Psost1-12345:0.1,(Aaoar1-77:0.2,Abobi1-5:0.3)95:0.05,Agabi1-1:0.4);\n",
			out:  "(Psost1:0.1,(Aaoar1:0.2,Abobi1:0.3)95:0.05,Agabi1:0.4);\n",
		},
		{
			name: "labels without dash",
			in:   "(A,B,(C,D));",
			out:  "(A,B,(C,D));",
		},
		{
			name: "internal labels with dash are kept",
			in:   "((A-1,B-2)node-x,C-3);",
			out:  "((A,B)node-x,C);",
		},
		{
			name: "quoted label",
			in:   "('Psost1-1 x':1,'it''s-2':2);",
			out:  "(Psost1:1,'it''s':2);",
		},
		{
			name: "comments and spaces",
			in:   "( A-1 [&support=1] : 0.1 , B-2 ) ;",
			out:  "( A [&support=1] : 0.1 , B ) ;",
		},
		{
			name: "several trees",
			in:   "(A-1,B-2);\n(C-3,D-4);\n",
			out:  "(A,B);\n(C,D);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newick.RenameTips(tt.in, newick.SpeciesTip)
			require.NoError(t, err)
			assert.Equal(t, tt.out, res)
		})
	}
}

func TestRenameTipsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"missing close", "((A,B);", newick.ErrUnbalanced},
		{"extra close", "(A,B));", newick.ErrUnbalanced},
		{"no terminator", "(A,B)", newick.ErrUnterminated},
		{"empty", "", newick.ErrUnterminated},
		{"open quote", "('A,B);", newick.ErrQuote},
		{"open comment", "(A[x,B);", newick.ErrComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newick.RenameTips(tt.in, newick.SpeciesTip)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRenameTipsCustom(t *testing.T) {
	res, err := newick.RenameTips("(a:1,b:2)c;", strings.ToUpper)
	require.NoError(t, err)
	assert.Equal(t, "(A:1,B:2)c;", res)
}
