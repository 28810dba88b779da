package mip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToLP encodes the problem in CPLEX LP text format, the input format of the
// cbc binary. Rows keep their creation order. The format has no ranged rows,
// so a two-sided row is emitted as a >= / <= pair with a "_ub" suffix on the
// second name.
func (problem *Problem) ToLP() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "\\ %s\n", problem.Name)
	if problem.Maximize {
		builder.WriteString("Maximize\n")
	} else {
		builder.WriteString("Minimize\n")
	}

	builder.WriteString(" obj:")
	terms := 0
	for _, variable := range problem.Variables {
		if variable.Cost == 0 {
			continue
		}
		writeTerm(&builder, variable.Cost, variable.Name)
		terms++
	}
	if terms == 0 && len(problem.Variables) > 0 {
		// Some readers reject an empty objective, a zero term keeps them happy.
		writeTerm(&builder, 0, problem.Variables[0].Name)
	}
	builder.WriteString("\nSubject To\n")

	for _, constraint := range problem.Constraints {
		lowerOpen := math.IsInf(constraint.Lower, -1)
		upperOpen := math.IsInf(constraint.Upper, 1)
		switch {
		case lowerOpen && upperOpen:
			continue
		case constraint.Lower == constraint.Upper:
			problem.writeRow(&builder, constraint.Name, constraint.Row, "=", constraint.Lower)
		case !lowerOpen && !upperOpen:
			problem.writeRow(&builder, constraint.Name, constraint.Row, ">=", constraint.Lower)
			problem.writeRow(&builder, constraint.Name+"_ub", constraint.Row, "<=", constraint.Upper)
		case upperOpen:
			problem.writeRow(&builder, constraint.Name, constraint.Row, ">=", constraint.Lower)
		default:
			problem.writeRow(&builder, constraint.Name, constraint.Row, "<=", constraint.Upper)
		}
	}

	var boundLines []string
	for _, variable := range problem.Variables {
		if variable.Type == Binary {
			continue
		}
		if variable.Lower == 0 && math.IsInf(variable.Upper, 1) {
			continue // the format's default bounds
		}
		switch {
		case math.IsInf(variable.Lower, -1) && math.IsInf(variable.Upper, 1):
			boundLines = append(boundLines, fmt.Sprintf(" %s free", variable.Name))
		case math.IsInf(variable.Lower, -1):
			boundLines = append(boundLines, fmt.Sprintf(" %s <= %s", variable.Name, formatCoefficient(variable.Upper)))
		case math.IsInf(variable.Upper, 1):
			boundLines = append(boundLines, fmt.Sprintf(" %s >= %s", variable.Name, formatCoefficient(variable.Lower)))
		default:
			boundLines = append(boundLines, fmt.Sprintf(" %s <= %s <= %s", formatCoefficient(variable.Lower), variable.Name, formatCoefficient(variable.Upper)))
		}
	}
	if len(boundLines) > 0 {
		builder.WriteString("Bounds\n")
		for _, line := range boundLines {
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}

	var binaries []string
	for _, variable := range problem.Variables {
		if variable.Type == Binary {
			binaries = append(binaries, variable.Name)
		}
	}
	if len(binaries) > 0 {
		builder.WriteString("Binaries\n")
		for start := 0; start < len(binaries); start += 10 {
			end := min(start+10, len(binaries))
			builder.WriteString(" " + strings.Join(binaries[start:end], " ") + "\n")
		}
	}

	builder.WriteString("End\n")
	return builder.String()
}

func (problem *Problem) writeRow(builder *strings.Builder, name string, row []Nonzero, relation string, rhs float64) {
	fmt.Fprintf(builder, " %s:", name)
	for _, nz := range row {
		writeTerm(builder, nz.Val, problem.Variables[nz.Col].Name)
	}
	fmt.Fprintf(builder, " %s %s\n", relation, formatCoefficient(rhs))
}

func writeTerm(builder *strings.Builder, coefficient float64, name string) {
	if coefficient < 0 {
		fmt.Fprintf(builder, " - %s %s", formatCoefficient(-coefficient), name)
	} else {
		fmt.Fprintf(builder, " + %s %s", formatCoefficient(coefficient), name)
	}
}

func formatCoefficient(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
