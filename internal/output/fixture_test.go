package output

import "github.com/crimson-sun/scanlog/internal/model"

func line(text, path string, seq int) model.LogLine {
	return model.LogLine{Text: text, SourcePath: path, Seq: seq}
}

func sampleResult() model.ResultSet {
	return model.ResultSet{
		Anomalies: []model.ClassifiedLine{
			{LogLine: line("error duplicated user\n", "scanlogs/log1.txt", 5), Verdict: model.Verdict{KeywordFlagged: true, Keyword: "error"}},
			{LogLine: line("info adding delivery service on user 0001 at 0xffdd45\n", "scanlogs/log2.txt", 14), Verdict: model.Verdict{StatisticalOutlier: true}},
			{LogLine: line("error SIG11", "scanlogs/log2.txt", 20), Verdict: model.Verdict{StatisticalOutlier: true, KeywordFlagged: true, Keyword: "error"}},
		},
		Normals: []model.ClassifiedLine{
			{LogLine: line("info creating new user 0001\n", "scanlogs/log1.txt", 0)},
			{LogLine: line("info releasing user 0002\n", "scanlogs/log1.txt", 3)},
		},
		AnomalyPatterns: []string{
			"error SIG11",
			"error duplicated user\n",
			"info adding delivery service on user 0001 at 0xffdd45\n",
		},
		NormalPatterns: []string{
			"info creating new user 0001\n",
			"info releasing user 0002\n",
		},
		Stats: model.Stats{Total: 5, Normals: 2, Anomalies: 3, StatisticalOnly: 1, KeywordOnly: 1, Both: 1},
	}
}
